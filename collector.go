// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cfo

import (
	"strings"

	"github.com/creachadair/cfo/ast"
	"github.com/creachadair/cfo/partial"
)

// A Collector accumulates the text of a streamed reply and reports the
// elements of its "actions" array as they are completed.
//
// An element is complete once a later element has begun, since nothing the
// model writes after that can change it. The last element is pending until
// the stream ends and Finish is called. Each action is reported exactly once
// and in order. A zero Collector is ready for use.
type Collector struct {
	buf     strings.Builder
	last    ast.Value // the most recent successful parse, or nil
	emitted int       // number of actions reported so far
	done    bool
}

// Add appends a chunk of reply text and returns any actions newly completed
// by it. If the text so far cannot be parsed, Add returns nothing and waits
// for more text.
func (c *Collector) Add(chunk string) []Action {
	if c.done {
		return nil
	}
	c.buf.WriteString(chunk)
	v := partial.Parse(stripFence(c.buf.String()))
	if v == nil {
		return nil
	}
	c.last = v
	elts := actionElements(v)
	return c.emit(elts, len(elts)-1)
}

// Finish reports any actions not yet reported, including the last one. If
// the complete text does not parse, Finish uses the last good parse. After
// Finish, the collector accepts no further text.
func (c *Collector) Finish() []Action {
	if c.done {
		return nil
	}
	c.done = true

	// The text is now complete, so prefer a strict parse. The closer can
	// misjudge a string ending in an escaped backslash and spoil a reply
	// that is otherwise valid.
	text := stripFence(c.buf.String())
	if v, err := ast.Parse(text); err == nil {
		c.last = v
	} else if v := partial.Parse(text); v != nil {
		c.last = v
	}
	elts := actionElements(c.last)
	return c.emit(elts, len(elts))
}

// emit reports elts[c.emitted:n] as actions.
func (c *Collector) emit(elts ast.Array, n int) []Action {
	var out []Action
	for c.emitted < n {
		out = append(out, ParseAction(elts[c.emitted]))
		c.emitted++
	}
	return out
}

// Pending returns the action currently being written, if any. Its fields may
// still be incomplete.
func (c *Collector) Pending() (Action, bool) {
	elts := actionElements(c.last)
	if c.done || len(elts) == 0 || len(elts) <= c.emitted {
		return Action{}, false
	}
	return ParseAction(elts[len(elts)-1]), true
}

// Text returns the complete text received so far.
func (c *Collector) Text() string { return c.buf.String() }

// Reply returns the most recent parse of the reply, or nil if none of the
// text received so far could be parsed.
func (c *Collector) Reply() ast.Value { return c.last }

// Emitted reports the number of actions reported so far.
func (c *Collector) Emitted() int { return c.emitted }

func actionElements(v ast.Value) ast.Array {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil
	}
	arr, _ := obj.Get("actions").(ast.Array)
	return arr
}

// stripFence removes a Markdown code fence around s, if it begins with one.
// A fence that is still being written is treated as though it were closed.
func stripFence(s string) string {
	t := strings.TrimLeft(s, " \t\r\n")
	if !strings.HasPrefix(t, "```") {
		return s
	}
	i := strings.IndexByte(t, '\n')
	if i < 0 {
		return "" // the opening line is not finished
	}
	body := t[i+1:]

	// A JSON text cannot end in a backtick, so trailing backticks are the
	// closing fence, or the start of one, whether or not it has a line of
	// its own.
	t = strings.TrimRight(body, " \t\r\n")
	if u := strings.TrimRight(t, "`"); len(u) < len(t) {
		body = u
	}
	return body
}
