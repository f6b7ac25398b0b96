// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/creachadair/cfo/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`null`, `null`},
		{` true `, `true`},
		{"\n\tfalse\r\n", `false`},
		{`0`, `0`},
		{`-12.5e3`, `-12.5e3`},
		{`"a\tb"`, `"a\tb"`},
		{`"A"`, `"A"`},
		{`[]`, `[]`},
		{`{}`, `{}`},
		{`[1, "two", [3], {"four": 4}]`, `[1,"two",[3],{"four":4}]`},
		{`{"a": 1, "b": [1, 2]}`, `{"a":1,"b":[1,2]}`},
		{`{ "x" : { "y" : { "z" : null } } }`, `{"x":{"y":{"z":null}}}`},
		{`{"dup": 1, "dup": 2}`, `{"dup":1,"dup":2}`},
	}
	for _, test := range tests {
		v, err := ast.Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("Parse(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{``, ast.ErrNoInput},
		{`   `, ast.ErrNoInput},
		{`1 2`, ast.ErrExtraInput},
		{`{} []`, ast.ErrExtraInput},
		{`"a" x`, ast.ErrExtraInput},
		{`{"a": 1,}`, nil},
		{`[1,]`, nil},
		{`{"a" 1}`, nil},
		{`{'a': 1}`, nil},
		{`[1, 2`, nil},
		{`{"a": tru}`, nil},
		{`// comment` + "\n" + `1`, nil},
		{`NaN`, nil},
	}
	for _, test := range tests {
		v, err := ast.Parse(test.input)
		if err == nil {
			t.Errorf("Parse(%#q): got %v, want error", test.input, v.JSON())
			continue
		}
		if test.want != nil && !errors.Is(err, test.want) {
			t.Errorf("Parse(%#q): got error %v, want %v", test.input, err, test.want)
		}
	}
}

func TestInterfaceMatchesStdlib(t *testing.T) {
	inputs := []string{
		`null`, `true`, `17`, `-0.25`, `1e3`, `"text"`,
		`[1, [2, [3]], {"k": "v"}]`,
		`{"a": 1, "b": [true, false, null], "c": {"d": "e\nf"}}`,
		`{"dup": 1, "dup": 2}`,
		`{"actions": [{"_type": "think", "text": "hello"}]}`,
	}
	for _, input := range inputs {
		var want any
		if err := json.Unmarshal([]byte(input), &want); err != nil {
			t.Fatalf("Unmarshal(%#q): %v", input, err)
		}
		v, err := ast.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%#q): %v", input, err)
		}
		if diff := cmp.Diff(want, v.Interface()); diff != "" {
			t.Errorf("Input %#q (-stdlib, +ast):\n%s", input, diff)
		}
	}
}

func TestNumber(t *testing.T) {
	n := ast.Number("1234.50")
	if got := n.Float64(); got != 1234.5 {
		t.Errorf("Float64: got %v, want 1234.5", got)
	}
	if d, err := n.Decimal(); err != nil {
		t.Errorf("Decimal: unexpected error: %v", err)
	} else if got := d.StringFixed(2); got != "1234.50" {
		t.Errorf("Decimal: got %q, want 1234.50", got)
	}
	if _, err := n.Int64(); err == nil {
		t.Error("Int64: got no error for a fractional value")
	}
	if z, err := ast.Number("-42").Int64(); err != nil || z != -42 {
		t.Errorf("Int64: got %d, %v; want -42, nil", z, err)
	}
}

func TestPath(t *testing.T) {
	v, err := ast.Parse(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		path []any
		want string
	}{
		{nil, `[{"a":1,"b":2},{"c":{"d":true},"e":false}]`},
		{[]any{0, "b"}, `2`},
		{[]any{1, "c", "d"}, `true`},
		{[]any{-1, "e"}, `false`},
		{[]any{-2, "a"}, `1`},
	}
	for _, test := range tests {
		got, err := ast.Path(v, test.path...)
		if err != nil {
			t.Errorf("Path %v: unexpected error: %v", test.path, err)
		} else if got.JSON() != test.want {
			t.Errorf("Path %v: got %#q, want %#q", test.path, got.JSON(), test.want)
		}
	}

	for _, bad := range [][]any{{2}, {-3}, {"a"}, {0, "z"}, {0, 0}, {1.5}} {
		if got, err := ast.Path(v, bad...); err == nil {
			t.Errorf("Path %v: got %v, want error", bad, got.JSON())
		}
	}

	if obj, err := ast.PathAs[ast.Object](v, 1, "c"); err != nil {
		t.Errorf("PathAs: unexpected error: %v", err)
	} else if len(obj) != 1 {
		t.Errorf("PathAs: got %d members, want 1", len(obj))
	}
	if _, err := ast.PathAs[ast.String](v, 0, "a"); err == nil {
		t.Error("PathAs: got no error for a type mismatch")
	}
}

func TestDecode(t *testing.T) {
	v, err := ast.Parse(`{"_type": "metric", "label": "Savings rate", "value": 0.25}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var got struct {
		Type  string  `json:"_type"`
		Label string  `json:"label"`
		Value float64 `json:"value"`
	}
	if err := ast.Decode(v, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Type != "metric" || got.Label != "Savings rate" || got.Value != 0.25 {
		t.Errorf("Decode: got %+v", got)
	}
	if err := ast.Decode(nil, &got); !errors.Is(err, ast.ErrNoInput) {
		t.Errorf("Decode(nil): got %v, want %v", err, ast.ErrNoInput)
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, "null"},
		{true, "true"},
		{"x", `"x"`},
		{25, "25"},
		{0.5, "0.5"},
		{ast.Array{ast.Bool(false)}, "[false]"},
	}
	for _, test := range tests {
		if got := ast.ToValue(test.input).JSON(); got != test.want {
			t.Errorf("ToValue(%v): got %#q, want %#q", test.input, got, test.want)
		}
	}

	mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
	mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
	mtest.MustPanic(t, func() { ast.ToValue(make(chan struct{})) })
}
