// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creachadair/cfo/finance"
	"github.com/creachadair/cfo/llm"
	"go.uber.org/zap"
)

// ErrInvalidReply is reported when no prefix of a model reply parses as JSON.
var ErrInvalidReply = errors.New("reply is not valid JSON")

// A Snapshot is the view of a ledger given to the model with each question.
type Snapshot struct {
	AsOf     finance.Date    `json:"as_of"`
	Currency string          `json:"currency,omitempty"`
	Month    finance.Summary `json:"month"`
	Health   finance.Health  `json:"health"`
	Ledger   *finance.Ledger `json:"ledger"`
}

// NewSnapshot summarizes l for the calendar month containing asOf.
func NewSnapshot(l *finance.Ledger, asOf finance.Date) Snapshot {
	month := finance.Month(asOf.Year(), asOf.Month())
	return Snapshot{
		AsOf:     asOf,
		Currency: l.Currency,
		Month:    l.Summarize(month),
		Health:   l.Health(month),
		Ledger:   l,
	}
}

const promptContract = `You are a virtual CFO. You advise one person about their finances, using
only the data given below. Reply with a single JSON object and nothing else,
of the form {"actions": [...]}. Each element of "actions" is an object with a
"_type" field, one of:

  {"_type": "think", "text": "..."}     a short note on what you are checking
  {"_type": "message", "text": "..."}   a message to the user
  {"_type": "insight", "title": "...", "detail": "...", "severity": "info" | "warning" | "critical"}
  {"_type": "metric", "label": "...", "value": 0, "unit": "..."}

Begin with one or more "think" actions, and end with a "message" answering
the question. Ratios in the data are fractions, not percentages.
`

// SystemPrompt returns the system prompt for a question about snap.
func SystemPrompt(snap Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(promptContract)
	if snap.Currency != "" {
		fmt.Fprintf(&sb, "All amounts are in %s.\n", snap.Currency)
	}
	sb.WriteString("\nDATA:\n")
	sb.Write(data)
	sb.WriteByte('\n')
	return sb.String(), nil
}

// An Advisor answers questions about a ledger.
type Advisor struct {
	LLM llm.Streamer

	// If nil, nothing is logged.
	Logger *zap.Logger
}

// Ask sends question about snap to the model, and calls emit with each
// action of the reply as soon as it is complete, in order. It returns all
// the actions reported. If the stream fails, Ask returns the actions
// reported before the failure along with the error.
func (a *Advisor) Ask(ctx context.Context, snap Snapshot, question string, emit func(Action)) ([]Action, error) {
	log := a.Logger
	if log == nil {
		log = zap.NewNop()
	}
	system, err := SystemPrompt(snap)
	if err != nil {
		return nil, err
	}

	// Make sure the stream is released if we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	log.Debug("asking advisor", zap.Int("system_len", len(system)), zap.Int("question_len", len(question)))

	var c Collector
	var all []Action
	report := func(acts []Action) {
		for _, act := range acts {
			if !act.Known() {
				log.Warn("unknown action type", zap.String("type", act.Type))
			}
			all = append(all, act)
			if emit != nil {
				emit(act)
			}
		}
	}

	text, errc := a.LLM.Stream(ctx, system, question)
	var chunks int
	for chunk := range text {
		chunks++
		report(c.Add(chunk))
	}
	if err := <-errc; err != nil {
		log.Error("advisor stream failed", zap.Int("chunks", chunks), zap.Error(err))
		return all, fmt.Errorf("advisor: %w", err)
	}
	report(c.Finish())

	if c.Reply() == nil {
		log.Error("unparseable reply", zap.Int("reply_len", len(c.Text())))
		return all, ErrInvalidReply
	}
	log.Info("advisor replied",
		zap.Int("actions", len(all)),
		zap.Int("chunks", chunks),
		zap.Duration("elapsed", time.Since(start)),
	)
	return all, nil
}
