// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package partial implements best-effort parsing of incomplete JSON text,
// such as the growing output of a language model that streams its reply one
// token at a time.
//
// Parse closes every string, object, and array left open at the end of the
// text (see syntax.Close) and parses the result as strict JSON. Most
// intermediate states of a stream cannot be closed this way (for example,
// when the text ends inside a number, a keyword, or just after a separator);
// for those Parse returns nil, and the caller should try again when more text
// has arrived. There is no distinction between text that is merely incomplete
// and text that can never be repaired.
//
// Parse keeps no state between calls; each call rescans the whole text.
package partial

import (
	"github.com/creachadair/cfo/ast"
	"github.com/creachadair/cfo/syntax"
)

// Parse returns the value of text after closing its open scopes, or nil if
// the closed text is not a valid JSON document. Parse never panics.
//
// A complete, valid JSON document parses unchanged.
func Parse(text string) ast.Value {
	if text == "" {
		return nil
	}
	v, err := ast.Parse(syntax.Close(text))
	if err != nil {
		return nil
	}
	return v
}

// Unmarshal parses text as Parse does and decodes the result into the Go
// value pointed to by dst, following the rules of encoding/json. It reports
// whether a value was found and decoded successfully; if not, dst may have
// been partially modified.
func Unmarshal(text string, dst any) bool {
	v := Parse(text)
	return v != nil && ast.Decode(v, dst) == nil
}
