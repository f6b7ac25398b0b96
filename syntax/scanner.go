// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"fmt"
	"io"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an in-memory text.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// The input is held as a read-only view and is never copied; the text of a
// token is a view into the original input.
type Scanner struct {
	src mem.RO
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from src.
func NewScanner(src mem.RO) *Scanner { return &Scanner{src: src} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, ok := s.peek()
		if !ok {
			return s.setErr(io.EOF)
		}

		// Discard whitespace.
		if isSpace(ch) {
			s.advance()
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.advance()
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber()
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString()
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok, want = True, mem.S("true")
		case 'f':
			s.tok, want = False, mem.S("false")
		case 'n':
			s.tok, want = Null, mem.S("null")
		default:
			return s.failf("unexpected %q", ch)
		}
		s.readWhile(isNameByte)
		if got := s.Text(); !got.Equal(want) {
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns a view of the undecoded text of the current token.
func (s *Scanner) Text() mem.RO { return s.src.SliceFrom(s.pos).SliceTo(s.end - s.pos) }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() string { return s.Text().StringCopy() }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString() error {
	s.advance() // opening quote
	for {
		ch, ok := s.peek()
		if !ok {
			return s.failf("unterminated string")
		}
		s.advance()
		switch {
		case ch == '"':
			s.tok = String
			return nil
		case ch == '\\':
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		}
	}
}

// scanEscape consumes the remainder of a \-escape inside a string.
func (s *Scanner) scanEscape() error {
	ch, ok := s.peek()
	if !ok {
		return s.failf("incomplete escape sequence")
	}
	s.advance()
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		for i := 0; i < 4; i++ {
			h, ok := s.peek()
			if !ok {
				return s.failf("invalid Unicode escape: incomplete")
			} else if !isHexDigit(h) {
				return s.failf("invalid Unicode escape: not a hex digit: %q", h)
			}
			s.advance()
		}
		return nil
	default:
		return s.failf("invalid %q after escape", ch)
	}
}

func (s *Scanner) scanNumber() error {
	if ch, _ := s.peek(); ch == '-' {
		// If there is a leading sign, we need at least one digit.
		s.advance()
		if err := s.require(isDigit, "digit"); err != nil {
			return err
		}
	}

	// Consume the remainder of an integer.
	s.readWhile(isDigit)

	// Check for extra leading zeroes, which are disallowed by RFC 8259.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.Text()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if ch, ok := s.peek(); ok && ch == '.' {
		s.advance()
		if s.readWhile(isDigit) == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if ch, ok := s.peek(); !ok || (ch != 'E' && ch != 'e') {
		return nil
	}
	s.advance()
	if ch, ok := s.peek(); ok && (ch == '-' || ch == '+') {
		s.advance()
	}
	if s.readWhile(isDigit) == 0 {
		return s.failf("missing exponent digits")
	}
	s.tok = Number
	return nil
}

func (s *Scanner) peek() (byte, bool) {
	if s.end >= s.src.Len() {
		return 0, false
	}
	return s.src.At(s.end), true
}

func (s *Scanner) advance() {
	s.end++
	s.ecol++
}

// require consumes a single byte matching f from the input, or returns an
// error mentioning the desired label.
func (s *Scanner) require(f func(byte) bool, label string) error {
	ch, ok := s.peek()
	if !ok {
		return s.failf("want %s, got end of input", label)
	} else if !f(ch) {
		return s.failf("got %q, want %s", ch, label)
	}
	s.advance()
	return nil
}

// readWhile consumes bytes matching f from the input until the end of input
// or until a byte not matching f is found. It reports the number of bytes
// consumed.
func (s *Scanner) readWhile(f func(byte) bool) int {
	var nr int
	for {
		ch, ok := s.peek()
		if !ok || !f(ch) {
			return nr
		}
		s.advance()
		nr++
	}
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, which JSON does not allow.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf mem.RO) bool {
	if buf.At(0) == '-' {
		buf = buf.SliceFrom(1) // skip leading sign
	}
	if buf.At(0) == '0' {
		// A leading zero is OK if it's the only digit.
		return buf.Len() > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
