// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values,
// and a parser that constructs syntax trees from JSON source.
package ast

import (
	"strconv"
	"strings"

	"github.com/creachadair/cfo/syntax"
	"github.com/shopspring/decimal"
)

// A Value is an arbitrary JSON value. The concrete type is one of Object,
// Array, String, Number, Bool, or Null.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// Interface converts the value to a plain Go value: map[string]any,
	// []any, string, float64, bool, or nil.
	Interface() any
}

// An Object is a collection of key-value members, in input order.
type Object []*Member

// Find returns the last member of o with the given key, or nil.
// Later members shadow earlier ones with the same key.
func (o Object) Find(key string) *Member {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i]
		}
	}
	return nil
}

// Get returns the value of the member of o with the given key, or nil.
func (o Object) Get(key string) Value {
	if m := o.Find(key); m != nil {
		return m.Value
	}
	return nil
}

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) Interface() any {
	out := make(map[string]any, len(o))
	for _, m := range o {
		out[m.Key] = m.Value.Interface()
	}
	return out
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m Member) JSON() string { return syntax.Quote(m.Key) + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array []Value

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

// A String is a decoded string value.
type String string

func (s String) JSON() string   { return syntax.Quote(string(s)) }
func (s String) Interface() any { return string(s) }

// A Number is a numeric value, retaining the text of its source.
type Number string

func (n Number) JSON() string   { return string(n) }
func (n Number) Interface() any { return n.Float64() }

// Float64 returns the value of n as a float64. Values too large in magnitude
// are reported as an infinity.
func (n Number) Float64() float64 {
	v, _ := strconv.ParseFloat(string(n), 64)
	return v
}

// Int64 returns the value of n as an int64, or an error if n is not an
// integer or is out of range.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Decimal returns the exact decimal value of n.
func (n Number) Decimal() (decimal.Decimal, error) { return decimal.NewFromString(string(n)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string   { return strconv.FormatBool(bool(b)) }
func (b Bool) Interface() any { return bool(b) }

// Null represents the null constant.
type Null struct{}

func (Null) JSON() string   { return "null" }
func (Null) Interface() any { return nil }

// ToValue converts a string, int, float64, bool, nil, or Value into a Value.
// It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case int:
		return Number(strconv.Itoa(t))
	case float64:
		return Number(strconv.FormatFloat(t, 'g', -1, 64))
	case bool:
		return Bool(t)
	case nil:
		return Null{}
	default:
		panic("ast.ToValue: unsupported type")
	}
}
