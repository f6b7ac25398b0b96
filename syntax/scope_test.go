// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax_test

import (
	"strings"
	"testing"

	"github.com/creachadair/cfo/syntax"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func TestScopes(t *testing.T) {
	tests := []struct {
		input string
		want  string // scope markers, outermost first
	}{
		{``, ``},
		{`not json at all`, ``},
		{`{"a": 1}`, ``},
		{`[1, 2, {"b": [3]}]`, ``},

		{`{`, `{`},
		{`[`, `[`},
		{`"`, `"`},
		{`{"a": 1, "b": [1, 2`, `{[`},
		{`{"actions": [{"_type": "think", "text": "hel`, `{[{"`},

		// Delimiters inside strings are opaque.
		{`["}]`, `["`},
		{`{"k": "[{"`, `{`},

		// Mismatched closers are ignored.
		{`{]`, `{`},
		{`[}`, `[`},
		{`[{]`, `[{`},

		// A quote preceded by a backslash does not toggle string mode.
		{`{"x": "a\"b`, `{"`},
		{`\"`, ``},

		// The lookback is exactly one byte: the quote after an escaped
		// backslash is treated as escaped too.
		{`{"x": "a\\"`, `{"`},
		{`{"x": "a\\"}`, `{"`},
	}
	for _, test := range tests {
		var sb strings.Builder
		for _, s := range syntax.Scopes(test.input) {
			sb.WriteString(s.String())
		}
		if got := sb.String(); got != test.want {
			t.Errorf("Scopes(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestClose(t *testing.T) {
	tests := []struct {
		input, suffix string
	}{
		{``, ``},
		{`{"a": 1}`, ``},
		{`{"a": 1, "b": [1, 2`, `]}`},
		{`{"actions": [{"_type": "think", "text": "hel`, `"}]}`},
		{`{"x": "a\"b`, `"}`},
		{`{"x": "a\\"`, `"}`},
		{`[[[`, `]]]`},
		{`[{"a": [{"b": "`, `"}]}]`},
	}
	for _, test := range tests {
		if got := syntax.Suffix(test.input); got != test.suffix {
			t.Errorf("Suffix(%#q): got %#q, want %#q", test.input, got, test.suffix)
		}
		want := test.input + test.suffix
		if got := syntax.Close(test.input); got != want {
			t.Errorf("Close(%#q): got %#q, want %#q", test.input, got, want)
		}
	}
}

func TestCloseLIFO(t *testing.T) {
	// Every prefix of a well-formed document closes to a text whose scope
	// stack is empty, and whose suffix mirrors the stack in reverse.
	const doc = `{"actions":[{"_type":"insight","title":"Dining [out]","tags":["a","{b}"]},{"_type":"message","text":"ok"}]}`
	for i := range len(doc) + 1 {
		prefix := doc[:i]
		stk := syntax.Scopes(prefix)
		suffix := syntax.Suffix(prefix)
		if len(suffix) != len(stk) {
			t.Fatalf("Prefix %#q: suffix %#q does not match stack depth %d", prefix, suffix, len(stk))
		}
		for j, s := range stk {
			if got := suffix[len(suffix)-1-j]; got != s.Closer() {
				t.Errorf("Prefix %#q: closer %d is %q, want %q", prefix, j, got, s.Closer())
			}
		}
		if rest := syntax.Scopes(syntax.Close(prefix)); len(rest) != 0 {
			t.Errorf("Close(%#q) leaves open scopes %v", prefix, rest)
		}
	}
	if s := syntax.Suffix(doc); s != "" {
		t.Errorf("Suffix of complete document: got %#q, want empty", s)
	}
}

func TestScopesStateless(t *testing.T) {
	const input = `{"a": ["b", {"c": "d`
	first := syntax.Scopes(input)
	for range 3 {
		if diff := cmp.Diff(first, syntax.Scopes(input)); diff != "" {
			t.Errorf("Scopes is not repeatable (-first, +again):\n%s", diff)
		}
	}
}

func BenchmarkClose(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`{"actions": [`)
	for i := range 200 {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(`{"_type": "message", "text": "line with \"quotes\" and [brackets]"}`)
	}
	input := sb.String()
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Suffix", func(b *testing.B) {
		for b.Loop() {
			syntax.Suffix(input)
		}
	})
	b.Run("Scanner", func(b *testing.B) {
		closed := syntax.Close(input)
		for b.Loop() {
			s := syntax.NewScanner(mem.S(closed))
			for s.Next() == nil {
			}
		}
	})
}
