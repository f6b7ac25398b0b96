// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"testing"

	"github.com/creachadair/cfo/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

const selectInput = `{
  "actions": [
    {"_type": "think", "text": "checking cash flow"},
    {"_type": "metric", "label": "Savings rate", "value": 12.5, "unit": "%"},
    {"_type": "insight", "title": "Card", "detail": {"text": "pay it down"}}
  ],
  "*": "star",
  "reply": "ok"
}`

func TestSelect(t *testing.T) {
	v, err := ast.Parse(selectInput)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		expr string
		want []string
	}{
		{`$`, []string{v.JSON()}},
		{`$.reply`, []string{`"ok"`}},
		{`$['reply']`, []string{`"ok"`}},
		{`$['*']`, []string{`"star"`}},
		{`$.missing`, nil},
		{`$.actions[0]._type`, []string{`"think"`}},
		{`$.actions[-1].title`, []string{`"Card"`}},
		{`$.actions[5]`, nil},
		{`$.actions[*]._type`, []string{`"think"`, `"metric"`, `"insight"`}},
		{`$.actions.*._type`, []string{`"think"`, `"metric"`, `"insight"`}},
		{`$.actions[1:]._type`, []string{`"metric"`, `"insight"`}},
		{`$.actions[:1]._type`, []string{`"think"`}},
		{`$.actions[-2:-1].value`, []string{`12.5`}},
		{`$.actions[:]._type`, []string{`"think"`, `"metric"`, `"insight"`}},
		{`$..text`, []string{`"checking cash flow"`, `"pay it down"`}},
		{`$..detail`, []string{`{"text":"pay it down"}`}},
		{`$..title`, []string{`"Card"`}},
		{`$.reply.text`, nil},
		{`$.reply[0]`, nil},
	}
	for _, tc := range tests {
		got, err := ast.Select(v, tc.expr)
		if err != nil {
			t.Errorf("Select %q: unexpected error: %v", tc.expr, err)
			continue
		}
		var gotJSON []string
		for _, g := range got {
			gotJSON = append(gotJSON, g.JSON())
		}
		if diff := cmp.Diff(tc.want, gotJSON); diff != "" {
			t.Errorf("Select %q (-want, +got):\n%s", tc.expr, diff)
		}
	}
}

func TestSelectDocumentOrder(t *testing.T) {
	tests := []struct {
		input, expr string
		want        []string
	}{
		{`{"a": {"x": 1}, "x": 2}`, `$..x`, []string{`1`, `2`}},
		{`{"x": {"x": {"x": 3}}}`, `$..x`, []string{`{"x":{"x":3}}`, `{"x":3}`, `3`}},
		{`[[{"x": 1}], {"x": 2}, {"y": {"x": 3}}]`, `$..x`, []string{`1`, `2`, `3`}},
		{`{"a": [1, [2]], "b": 3}`, `$..*`, []string{`[1,[2]]`, `1`, `[2]`, `2`, `3`}},
	}
	for _, tc := range tests {
		v, err := ast.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse %q: %v", tc.input, err)
		}
		var got []string
		for _, m := range ast.MustCompile(tc.expr).Select(v) {
			got = append(got, m.JSON())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Select %q on %s (-want, +got):\n%s", tc.expr, tc.input, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []string{
		``,
		`actions`,
		`$.`,
		`$..`,
		`$.0`,
		`$[`,
		`$[0`,
		`$[?(@.x)]`,
		`$actions`,
	}
	for _, expr := range tests {
		sel, err := ast.Compile(expr)
		if err == nil {
			t.Errorf("Compile %q: got %v, want error", expr, sel)
		}
	}
	mtest.MustPanic(t, func() { ast.MustCompile(`$[`) })
}

func TestSelectorReuse(t *testing.T) {
	sel := ast.MustCompile(`$.actions[*]._type`)
	if got, want := sel.String(), `$.actions[*]._type`; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	for _, tc := range []struct {
		input string
		want  int
	}{
		{`{"actions": []}`, 0},
		{`{"actions": [{"_type": "think"}]}`, 1},
		{`{"actions": [{"_type": "think"}, {"text": "no type"}, {"_type": "message"}]}`, 2},
		{`[1, 2, 3]`, 0},
	} {
		v, err := ast.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse %q: %v", tc.input, err)
		}
		if got := sel.Select(v); len(got) != tc.want {
			t.Errorf("Select %q: got %d values, want %d", tc.input, len(got), tc.want)
		}
	}
}
