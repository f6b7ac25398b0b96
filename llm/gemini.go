// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package llm

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/creachadair/cfo/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini is a Streamer for the Google Gemini API.
type Gemini struct {
	client    *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
	log       *zap.Logger
}

// NewGemini constructs a Gemini streamer from cfg.
func NewGemini(ctx context.Context, cfg config.LLM, log *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client:    client,
		model:     cmp.Or(cfg.Model, "gemini-2.5-flash"),
		maxTokens: int32(cfg.MaxTokens),
		timeout:   cfg.TimeoutDuration(),
		log:       cmp.Or(log, zap.NewNop()),
	}, nil
}

// Stream implements the Streamer interface.
func (g *Gemini) Stream(ctx context.Context, system, prompt string) (<-chan string, <-chan error) {
	text := make(chan string, 100)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(text)

		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		cfg := &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		}
		if system != "" {
			cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
		}
		if g.maxTokens > 0 {
			cfg.MaxOutputTokens = g.maxTokens
		}

		start := time.Now()
		for rsp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), cfg) {
			if err != nil {
				g.log.Warn("stream failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
				errc <- fmt.Errorf("gemini stream: %w", err)
				return
			}
			chunk := rsp.Text()
			if chunk == "" {
				continue
			}
			select {
			case text <- chunk:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		g.log.Debug("stream complete", zap.Duration("elapsed", time.Since(start)))
	}()
	return text, errc
}
