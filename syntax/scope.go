// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax

// A Scope is a marker for a syntactic scope that has been opened but not yet
// closed in a JSON text.
type Scope byte

// Constants defining the valid Scope values.
const (
	InString Scope = '"' // an unterminated string
	InObject Scope = '{' // an unclosed object
	InArray  Scope = '[' // an unclosed array
)

// Closer returns the delimiter that closes s.
func (s Scope) Closer() byte {
	switch s {
	case InObject:
		return '}'
	case InArray:
		return ']'
	default:
		return '"'
	}
}

func (s Scope) String() string { return string(rune(s)) }

// Scopes scans text from left to right and returns the stack of scopes that
// remain open at the end of it, outermost first.
//
// String contents are opaque. A double quote opens or closes a string unless
// the byte immediately before it is a backslash. Only that one byte is
// examined, so a quote following an escaped backslash (\\") is taken to be
// escaped as well; callers must not rely on Scopes to disambiguate that case.
//
// Outside of strings, "{" and "[" open a scope, and "}" and "]" close the
// innermost scope only if it is of the matching kind. Other closers are
// ignored.
func Scopes(text string) []Scope {
	var stk []Scope
	for i := 0; i < len(text); i++ {
		inString := len(stk) != 0 && stk[len(stk)-1] == InString
		switch ch := text[i]; ch {
		case '"':
			if i > 0 && text[i-1] == '\\' {
				continue
			} else if inString {
				stk = stk[:len(stk)-1]
			} else {
				stk = append(stk, InString)
			}
		case '{', '[':
			if !inString {
				stk = append(stk, Scope(ch))
			}
		case '}', ']':
			if !inString && len(stk) != 0 && stk[len(stk)-1].Closer() == ch {
				stk = stk[:len(stk)-1]
			}
		}
	}
	return stk
}

// Suffix returns the text needed to close all the scopes left open at the end
// of text, innermost first.
func Suffix(text string) string {
	stk := Scopes(text)
	if len(stk) == 0 {
		return ""
	}
	buf := make([]byte, len(stk))
	for i, s := range stk {
		buf[len(stk)-1-i] = s.Closer()
	}
	return string(buf)
}

// Close returns text with the closing delimiters for all its open scopes
// appended. If text has no open scopes, it is returned unchanged.
func Close(text string) string { return text + Suffix(text) }
