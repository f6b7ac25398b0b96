// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package llm implements token-streaming clients for language models.
//
// A [Streamer] delivers the text of a model reply in chunks as it is
// generated. The content channel is closed when the reply is complete, and
// the error channel then delivers at most one error before it is closed.
// Callers must either drain the content channel or cancel the context.
package llm

import (
	"context"
	"fmt"

	"github.com/creachadair/cfo/config"
	"go.uber.org/zap"
)

// A Streamer sends a prompt to a language model and streams the reply.
type Streamer interface {
	Stream(ctx context.Context, system, prompt string) (<-chan string, <-chan error)
}

// New constructs a Streamer for the provider named by cfg.
func New(ctx context.Context, cfg config.LLM, log *zap.Logger) (Streamer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	switch cfg.Provider {
	case "anthropic":
		return &Anthropic{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.TimeoutDuration(),
			Logger:    log,
		}, nil
	case "gemini":
		g, err := NewGemini(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Collect reads the complete reply from a stream. It returns the text
// received so far along with any error reported by the stream.
func Collect(text <-chan string, errc <-chan error) (string, error) {
	var buf []byte
	for chunk := range text {
		buf = append(buf, chunk...)
	}
	return string(buf), <-errc
}
