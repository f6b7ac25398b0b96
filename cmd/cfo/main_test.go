// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/cfo/config"
	"github.com/creachadair/cfo/llm"
	"github.com/creachadair/cfo/store"
	"go.uber.org/zap"
)

const testLedger = `{
  // One month of history.
  "transactions": [
    {"date": "2026-10-01", "kind": "income", "amount": "5000", "category": "salary"},
    {"date": "2026-10-03", "kind": "expense", "amount": "2000", "category": "rent"},
    {"date": "2026-10-12", "kind": "expense", "amount": "1000", "category": "food"},
  ],
  "recurring": [{"name": "insurance", "amount": "1200", "frequency": "annual"}],
  "cards": [{"name": "visa", "balance": "500", "limit": "5000", "apr": "22.9", "minimum_payment": "25"}],
  "loans": [{"name": "car", "balance": "10000", "apr": "5", "payment": "250", "term_months": 48}],
  "goals": [{"name": "rainy day", "target": "18000", "saved": "9000", "emergency": true}],
}`

type cli struct {
	t      *testing.T
	dir    string
	config string
	db     string
}

func newCLI(t *testing.T) *cli {
	dir := t.TempDir()
	return &cli{
		t:      t,
		dir:    dir,
		config: filepath.Join(dir, "config.jwcc"),
		db:     filepath.Join(dir, "ledger.db"),
	}
}

// run executes the command line with stdin as input, and returns its output.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", c.config, "--db", c.db}, args...))
	err := cmd.ExecuteContext(c.t.Context())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	if err != nil {
		c.t.Fatalf("Run %q: unexpected error: %v", args, err)
	}
	return out
}

func (c *cli) importLedger() {
	c.t.Helper()
	path := filepath.Join(c.dir, "ledger.jwcc")
	if err := os.WriteFile(path, []byte(testLedger), 0600); err != nil {
		c.t.Fatal(err)
	}
	if got := c.mustRun("import", path); got != "imported 7 records\n" {
		c.t.Errorf("Import: got %q", got)
	}
}

func checkContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("Output is missing %q:\n%s", w, out)
		}
	}
}

func TestClose(t *testing.T) {
	c := newCLI(t)
	tests := []struct {
		stdin string
		args  []string
		want  string
	}{
		{"", []string{"close", `{"a": [1, "b`}, `{"a": [1, "b"]}` + "\n"},
		{`{"a": [1, "b` + "\n", []string{"close"}, `{"a": [1, "b"]}` + "\n"},
		{"", []string{"close", "--parse", `{"a": [1, "b`}, `{"a":[1,"b"]}` + "\n"},
		{"", []string{"close", `{"x": "a\\"`}, `{"x": "a\\""}` + "\n"},
		{
			`{"actions": [{"_type": "think", "text": "a"}, {"_type": "mes`,
			[]string{"close", "--select", "$.actions[*]._type"},
			`"think"` + "\n" + `"mes"` + "\n",
		},
		{"", []string{"close", "--select", "$.nope", `{"a": 1`}, ""},
	}
	for _, test := range tests {
		got, err := c.run(test.stdin, test.args...)
		if err != nil {
			t.Errorf("Run %q: unexpected error: %v", test.args, err)
		} else if got != test.want {
			t.Errorf("Run %q: got %q, want %q", test.args, got, test.want)
		}
	}

	if _, err := c.run("", "close", "--parse", `{"a":`); err == nil {
		t.Error("Close --parse of a dangling key: got nil, want error")
	}
	if _, err := c.run("", "close", "--select", "actions", `{}`); err == nil {
		t.Error("Close --select with a bad expression: got nil, want error")
	}
}

func TestReports(t *testing.T) {
	c := newCLI(t)
	c.importLedger()

	t.Run("Health", func(t *testing.T) {
		out := c.mustRun("health", "--month", "2026-10")
		checkContains(t, out, "5000.00 USD", "40.0%", "income exceeds expenses", "(3.0 months)", "88/100")
	})
	t.Run("Debt", func(t *testing.T) {
		out := c.mustRun("debt", "--extra", "200", "--strategy", "snowball")
		checkContains(t, out, "visa", "car", "snowball: debt free in")
		if _, err := c.run("", "debt", "--strategy", "yolo"); err == nil {
			t.Error("Debt with unknown strategy: got nil, want error")
		}
	})
	t.Run("Score", func(t *testing.T) {
		out := c.mustRun("score", "--on-time", "100", "--years", "20")
		checkContains(t, out, "Estimated score: 850 (exceptional)", "utilization")
	})
}

func TestLoan(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("loan", "--principal", "10000", "--apr", "6", "--months", "36", "--schedule")
	checkContains(t, out, "Monthly payment: 304.22")
	if n := strings.Count(out, "\n"); n < 37 {
		t.Errorf("Schedule has %d lines, want at least 37", n)
	}
	if _, err := c.run("", "loan", "--principal", "100", "--months", "0"); err == nil {
		t.Error("Loan with no term: got nil, want error")
	}
}

func TestTransactions(t *testing.T) {
	c := newCLI(t)
	id := strings.TrimSpace(c.mustRun("tx", "add", "--date", "2026-10-09", "--amount", "42.5",
		"--category", "books", "--desc", "A novel"))
	if id == "" {
		t.Fatal("tx add printed no ID")
	}
	c.mustRun("tx", "add", "--date", "2026-11-01", "--kind", "income", "--amount", "10")

	out := c.mustRun("tx", "list", "--month", "2026-10")
	checkContains(t, out, "2026-10-09", "expense", "42.50", "books", "A novel", id)
	if strings.Contains(out, "2026-11-01") {
		t.Errorf("List for October includes November:\n%s", out)
	}

	if _, err := c.run("", "tx", "add", "--amount", "ten"); err == nil {
		t.Error("tx add with a bad amount: got nil, want error")
	}
	if _, err := c.run("", "tx", "add", "--amount", "1", "--kind", "gift"); err == nil {
		t.Error("tx add with a bad kind: got nil, want error")
	}

	c.mustRun("tx", "rm", id)
	if _, err := c.run("", "tx", "rm", id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("tx rm again: got %v, want %v", err, store.ErrNotFound)
	}
}

// replyStreamer delivers a fixed reply one character at a time.
type replyStreamer string

func (r replyStreamer) Stream(ctx context.Context, system, prompt string) (<-chan string, <-chan error) {
	text := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(text)
		for _, ch := range string(r) {
			select {
			case text <- string(ch):
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return text, errc
}

func TestAsk(t *testing.T) {
	saved := newStreamer
	t.Cleanup(func() { newStreamer = saved })
	newStreamer = func(context.Context, config.LLM, *zap.Logger) (llm.Streamer, error) {
		return replyStreamer("```json\n" + `{"actions": [
  {"_type": "think", "text": "Looking at October"},
  {"_type": "metric", "label": "Net", "value": 2000, "unit": "USD"},
  {"_type": "insight", "title": "Card", "detail": "pay it down", "severity": "warning"},
  {"_type": "message", "text": "You saved 40% of your income."}
]}` + "\n```"), nil
	}

	c := newCLI(t)
	c.importLedger()

	out := c.mustRun("ask", "--as-of", "2026-10-20", "How", "am", "I", "doing?")
	want := "(Looking at October)\nNet: 2000 USD\n[warning] Card: pay it down\nYou saved 40% of your income.\n"
	if out != want {
		t.Errorf("Ask: got %q, want %q", out, want)
	}

	out = c.mustRun("ask", "--thinking=false", "Anything", "else?")
	if strings.Contains(out, "Looking at October") {
		t.Errorf("Ask --thinking=false printed a think action:\n%s", out)
	}
}
