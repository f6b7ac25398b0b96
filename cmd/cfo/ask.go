// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/cfo"
	"github.com/creachadair/cfo/finance"
	"github.com/creachadair/cfo/store"
	"github.com/spf13/cobra"
)

func askCmd(e *env) *cobra.Command {
	var asOf string
	var showThinking bool
	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the virtual CFO a question about your finances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := finance.Today()
			if asOf != "" {
				d, err := finance.ParseDate(asOf)
				if err != nil {
					return err
				}
				date = d
			}
			return e.withStore(cmd.Context(), func(ctx context.Context, s *store.Store) error {
				l, err := s.Load(ctx)
				if err != nil {
					return err
				}
				l.Currency = e.cfg.Currency

				streamer, err := newStreamer(ctx, e.cfg.LLM, e.log)
				if err != nil {
					return err
				}
				adv := &cfo.Advisor{LLM: streamer, Logger: e.log}
				out := cmd.OutOrStdout()
				st := newActionStyles(out)
				_, err = adv.Ask(ctx, cfo.NewSnapshot(l, date), strings.Join(args, " "), func(a cfo.Action) {
					if a.Type == cfo.Think && !showThinking {
						return
					}
					fmt.Fprintln(out, st.render(a))
				})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Answer as of this date (YYYY-MM-DD; default today)")
	cmd.Flags().BoolVar(&showThinking, "thinking", true, "Show the advisor's progress notes")
	return cmd
}

// actionStyles decorates actions for display. When the output is not a
// terminal, the renderer emits plain text.
type actionStyles struct {
	think    lipgloss.Style
	metric   lipgloss.Style
	severity map[string]lipgloss.Style
}

func newActionStyles(w io.Writer) actionStyles {
	r := lipgloss.NewRenderer(w)
	return actionStyles{
		think:  r.NewStyle().Faint(true).Italic(true),
		metric: r.NewStyle().Bold(true),
		severity: map[string]lipgloss.Style{
			"info":     r.NewStyle().Foreground(lipgloss.Color("12")),
			"warning":  r.NewStyle().Foreground(lipgloss.Color("11")),
			"critical": r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		},
	}
}

func (s actionStyles) render(a cfo.Action) string {
	switch a.Type {
	case cfo.Think:
		return s.think.Render(a.String())
	case cfo.Metric:
		return s.metric.Render(a.String())
	case cfo.Insight:
		if st, ok := s.severity[a.Severity]; ok {
			return st.Render(a.String())
		}
	}
	return a.String()
}
