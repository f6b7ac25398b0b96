// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/cfo/syntax"
)

// ErrExtraInput is reported by Parse when the input contains data after the
// first complete value.
var ErrExtraInput = errors.New("extra input after value")

// ErrNoInput is reported by Parse when the input contains no value.
var ErrNoInput = errors.New("no value in input")

// Parse parses text as a single strict JSON value. Whitespace may precede and
// follow the value, but anything else after it is reported as an error
// wrapping ErrExtraInput.
func Parse(text string) (Value, error) {
	st := syntax.NewStream(text)
	h := new(parseHandler)
	if err := st.ParseOne(h); err == io.EOF {
		return nil, ErrNoInput
	} else if err != nil {
		return nil, err
	} else if len(h.stk) != 1 {
		return nil, errors.New("incomplete value")
	}
	v := h.stk[0]
	if err := st.ParseOne(new(parseHandler)); err != io.EOF {
		return nil, errors.Join(ErrExtraInput, err)
	}
	return v, nil
}

// Decode decodes the JSON encoding of v into the Go value pointed to by dst,
// following the rules of encoding/json.
func Decode(v Value, dst any) error {
	if v == nil {
		return ErrNoInput
	}
	return json.Unmarshal([]byte(v.JSON()), dst)
}

// objectStub and arrayStub are stack placeholders for an incomplete object or
// array during parsing. They do not appear in a completed AST.
type objectStub struct{ Value }
type arrayStub struct{ Value }

// A parseHandler implements the syntax.Handler interface to construct
// abstract syntax trees for JSON values.
type parseHandler struct {
	stk []Value
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc syntax.Anchor) error {
	h.push(objectStub{})
	return nil
}

func (h *parseHandler) EndObject(loc syntax.Anchor) error {
	for i := len(h.stk) - 1; i >= 0; i-- {
		if _, ok := h.stk[i].(objectStub); ok {
			obj := make(Object, 0, len(h.stk)-i-1)
			for _, v := range h.stk[i+1:] {
				obj = append(obj, v.(*memberStub).m)
			}
			h.stk = h.stk[:i+1]
			h.stk[i] = obj
			return nil
		}
	}
	return errors.New("unbalanced end of object")
}

func (h *parseHandler) BeginArray(loc syntax.Anchor) error {
	h.push(arrayStub{})
	return nil
}

func (h *parseHandler) EndArray(loc syntax.Anchor) error {
	for i := len(h.stk) - 1; i >= 0; i-- {
		if _, ok := h.stk[i].(arrayStub); ok {
			arr := make(Array, len(h.stk)-i-1)
			copy(arr, h.stk[i+1:])
			h.stk = h.stk[:i+1]
			h.stk[i] = arr
			return nil
		}
	}
	return errors.New("unbalanced end of array")
}

// memberStub holds a member whose value has not yet been reduced.
type memberStub struct {
	Value // placeholder, not used

	m *Member
}

func (h *parseHandler) BeginMember(loc syntax.Anchor) error {
	key, err := syntax.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("at %s: invalid key: %w", loc.Location().First, err)
	}
	h.push(&memberStub{m: &Member{Key: string(key)}})
	return nil
}

func (h *parseHandler) EndMember(loc syntax.Anchor) error {
	// Stack: ... [incomplete-member] [value]
	n := len(h.stk)
	m := h.stk[n-2].(*memberStub)
	m.m.Value = h.stk[n-1]
	h.stk = h.stk[:n-1]
	// Stack: ... [complete-member]
	return nil
}

func (h *parseHandler) Value(loc syntax.Anchor) error {
	switch loc.Token() {
	case syntax.String:
		dec, err := syntax.Unquote(loc.Text())
		if err != nil {
			return fmt.Errorf("at %s: %w", loc.Location().First, err)
		}
		h.push(String(dec))
	case syntax.Integer, syntax.Number:
		h.push(Number(loc.Copy()))
	case syntax.True, syntax.False:
		h.push(Bool(loc.Token() == syntax.True))
	case syntax.Null:
		h.push(Null{})
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc syntax.Anchor) {}
