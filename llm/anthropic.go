// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package llm

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
)

// Anthropic is a Streamer for the Anthropic Messages API.
type Anthropic struct {
	APIKey    string
	Model     string
	BaseURL   string        // default: the public API endpoint
	MaxTokens int           // default: 4096
	Timeout   time.Duration // applied when ctx has no deadline; default: 120s

	// If nil, use http.DefaultClient.
	HTTPClient *http.Client

	// If nil, nothing is logged.
	Logger *zap.Logger
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	Stream    bool               `json:"stream"`
}

// anthropicEvent is the payload of a server-sent event.
type anthropicEvent struct {
	Type  string `json:"type"`
	Delta *struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"delta,omitempty"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Stream implements the Streamer interface.
func (a *Anthropic) Stream(ctx context.Context, system, prompt string) (<-chan string, <-chan error) {
	text := make(chan string, 100)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(text)

		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cmp.Or(a.Timeout, 120*time.Second))
			defer cancel()
		}
		start := time.Now()
		if err := a.stream(ctx, system, prompt, text); err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			a.log().Warn("stream failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
			errc <- err
			return
		}
		a.log().Debug("stream complete", zap.Duration("elapsed", time.Since(start)))
	}()
	return text, errc
}

func (a *Anthropic) stream(ctx context.Context, system, prompt string, text chan<- string) error {
	if a.APIKey == "" {
		return errors.New("API key not configured")
	}
	body, err := json.Marshal(anthropicRequest{
		Model:     a.Model,
		MaxTokens: cmp.Or(a.MaxTokens, 4096),
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		Stream:    true,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	url := strings.TrimSuffix(cmp.Or(a.BaseURL, anthropicURL), "/") + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	a.log().Debug("sending request", zap.String("url", url), zap.Int("prompt_len", len(prompt)))
	rsp, err := cmp.Or(a.HTTPClient, http.DefaultClient).Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(rsp.Body, 4096))
		return fmt.Errorf("request failed with status %d: %s", rsp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return readEvents(ctx, rsp.Body, text)
}

// readEvents reads server-sent events from r and forwards text deltas to
// text until the stream ends. A "[DONE]" payload or a message_stop event
// ends the stream.
func readEvents(ctx context.Context, r io.Reader, text chan<- string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		data, ok := strings.CutPrefix(sc.Text(), "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" {
			continue
		} else if data == "[DONE]" {
			return nil
		}

		var evt anthropicEvent
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			continue // not an event we understand
		}
		if evt.Error != nil {
			return fmt.Errorf("API error: %s: %s", evt.Error.Type, evt.Error.Message)
		}
		switch evt.Type {
		case "message_stop":
			return nil
		case "content_block_delta":
			if evt.Delta == nil || evt.Delta.Text == "" {
				continue
			}
			select {
			case text <- evt.Delta.Text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

func (a *Anthropic) log() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
