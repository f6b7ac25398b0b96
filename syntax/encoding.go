// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"errors"

	"github.com/creachadair/cfo/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }

// AppendQuote appends the JSON encoding of src to buf and returns the
// extended buffer.
func AppendQuote(buf []byte, src string) []byte { return escape.AppendQuote(buf, mem.S(src)) }

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
func Unquote(src mem.RO) ([]byte, error) {
	if src.Len() < 2 || src.At(0) != '"' || src.At(src.Len()-1) != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(src.SliceFrom(1).SliceTo(src.Len() - 2))
}
