// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A Selector is a compiled JSONPath expression. The supported grammar is:
//
//	path  = "$" { step }
//	step  = ".." name | "." name | "[" elem "]"
//	name  = "*" | word | "'" text "'"
//	elem  = name | int | [int] ":" [int]
//
// A word is a run of letters, digits, and underscores. Negative indices count
// backward from the end of an array. Filter and script expressions are not
// supported.
type Selector struct {
	expr  string
	steps []selStep
}

// Compile parses expr as a JSONPath expression.
func Compile(expr string) (*Selector, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(expr), "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	sel := &Selector{expr: expr}
	for rest != "" {
		step, next, err := parseSelStep(rest)
		if err != nil {
			off := len(expr) - len(rest)
			return nil, fmt.Errorf("at offset %d: %w", off, err)
		}
		sel.steps = append(sel.steps, step)
		rest = next
	}
	return sel, nil
}

// MustCompile is as Compile, but panics if expr is invalid.
func MustCompile(expr string) *Selector {
	sel, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("compile %q: %v", expr, err))
	}
	return sel
}

// String returns the source text of s.
func (s *Selector) String() string { return s.expr }

// Select returns the values under v matched by s, in document order.
// If nothing matches, Select returns an empty slice.
func (s *Selector) Select(v Value) []Value {
	cur := []Value{v}
	for _, step := range s.steps {
		var next []Value
		for _, c := range cur {
			next = step.apply(c, next)
		}
		cur = next
	}
	return cur
}

// Select compiles expr and applies it to v.
func Select(v Value, expr string) ([]Value, error) {
	sel, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return sel.Select(v), nil
}

type selOp byte

const (
	opMember selOp = iota // .name, ['name'], .*
	opRecur               // ..name, ..*
	opIndex               // [n]
	opSlice               // [lo:hi]
)

type selStep struct {
	op     selOp
	name   string // for member and recur; "*" matches everything
	quoted bool   // name was quoted, so "*" is literal
	lo, hi *int   // for index (lo) and slice
}

func (s selStep) wild() bool { return s.name == "*" && !s.quoted }

func (s selStep) apply(v Value, out []Value) []Value {
	switch s.op {
	case opMember:
		return s.members(v, out)
	case opRecur:
		// Visit each child before its descendants and its later siblings.
		switch t := v.(type) {
		case Object:
			for _, m := range t {
				if s.wild() || m.Key == s.name {
					out = append(out, m.Value)
				}
				out = s.apply(m.Value, out)
			}
		case Array:
			for _, e := range t {
				if s.wild() {
					out = append(out, e)
				}
				out = s.apply(e, out)
			}
		}
		return out
	case opIndex:
		if arr, ok := v.(Array); ok {
			if i, ok := fixArrayBound(len(arr), *s.lo); ok {
				out = append(out, arr[i])
			}
		}
		return out
	case opSlice:
		if arr, ok := v.(Array); ok {
			lo, hi := sliceBound(len(arr), s.lo, 0), sliceBound(len(arr), s.hi, len(arr))
			for i := lo; i < hi; i++ {
				out = append(out, arr[i])
			}
		}
		return out
	}
	panic(fmt.Sprintf("unknown selector op %d", s.op))
}

// members appends the children of v selected by the name of s.
func (s selStep) members(v Value, out []Value) []Value {
	switch t := v.(type) {
	case Object:
		for _, m := range t {
			if s.wild() || m.Key == s.name {
				out = append(out, m.Value)
			}
		}
	case Array:
		if s.wild() {
			out = append(out, t...)
		}
	}
	return out
}

func sliceBound(n int, p *int, dflt int) int {
	if p == nil {
		return dflt
	}
	i := *p
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

var (
	selWordRE  = regexp.MustCompile(`^\w+`)
	selQuoteRE = regexp.MustCompile(`^'([^']*)'`)
	selIntRE   = regexp.MustCompile(`^-?\d+`)
)

func parseSelStep(s string) (selStep, string, error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		name, quoted, rest, err := parseSelName(t)
		if err != nil {
			return selStep{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return selStep{op: opRecur, name: name, quoted: quoted}, rest, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		name, quoted, rest, err := parseSelName(t)
		if err != nil {
			return selStep{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return selStep{op: opMember, name: name, quoted: quoted}, rest, nil
	}
	t, ok := strings.CutPrefix(s, "[")
	if !ok {
		return selStep{}, s, errors.New("invalid path step")
	}
	var step selStep
	if name, quoted, rest, err := parseSelName(t); err == nil {
		step, t = selStep{op: opMember, name: name, quoted: quoted}, rest
	} else {
		lo, rest := parseSelInt(t)
		if u, ok := strings.CutPrefix(rest, ":"); ok {
			hi, rest := parseSelInt(u)
			step, t = selStep{op: opSlice, lo: lo, hi: hi}, rest
		} else if lo != nil {
			step, t = selStep{op: opIndex, lo: lo}, rest
		} else {
			return selStep{}, s, fmt.Errorf("invalid subscript %q", t)
		}
	}
	rest, ok := strings.CutPrefix(t, "]")
	if !ok {
		return selStep{}, s, errors.New("missing close bracket")
	}
	return step, rest, nil
}

func parseSelName(s string) (name string, quoted bool, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return "*", false, t, nil
	}
	if m := selQuoteRE.FindStringSubmatch(s); m != nil {
		return m[1], true, s[len(m[0]):], nil
	}
	// Bare words must not begin with a digit, so [0] is an index.
	if m := selWordRE.FindString(s); m != "" && !isDigitByte(m[0]) {
		return m, false, s[len(m):], nil
	}
	return "", false, s, errors.New("invalid name")
}

func parseSelInt(s string) (*int, string) {
	m := selIntRE.FindString(s)
	if m == "" {
		return nil, s
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil, s
	}
	return &n, s[len(m):]
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
