// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package syntax implements a lexical scanner and stream parser for JSON
// text, and a scope scanner that closes incomplete JSON text.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON held in memory.
// Construct a scanner from a read-only view of the input and call its Next
// method to iterate over the tokens:
//
//	s := syntax.NewScanner(mem.S(input))
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates a lexical error in the input.
//
// # Streaming
//
// The Stream type implements an event-driven parser for strict JSON. The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type *syntax.SyntaxError is returned.
//
//	s := syntax.NewStream(input)
//	if err := s.ParseOne(handler); err == io.EOF {
//	   log.Print("No more input")
//	} else if err != nil {
//	   log.Printf("ParseOne failed: %v", err)
//	}
//
// # Closing
//
// Text streamed from a language model is a growing prefix of a JSON document.
// Close appends the delimiters needed to terminate every string, object, and
// array left open in such a prefix:
//
//	syntax.Close(`{"a": 1, "b": [1, 2`) // {"a": 1, "b": [1, 2]}
//
// Closing does not validate the text; a prefix that ends inside a number,
// a keyword, or after a separator will not parse even after closing.
package syntax
