// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cfo

import (
	"fmt"
	"strings"

	"github.com/creachadair/cfo/ast"
)

// Known action types.
const (
	Think   = "think"   // reasoning shown to the user as progress
	Message = "message" // text addressed to the user
	Insight = "insight" // a titled observation with a severity
	Metric  = "metric"  // a labeled figure
)

// An Action is one element of the "actions" array of an advisor reply.
// Fields not used by the action type are empty. Actions of an unknown type
// keep only their Type and Raw value.
type Action struct {
	Type string `json:"_type"`

	Text     string `json:"text,omitempty"`     // think, message
	Title    string `json:"title,omitempty"`    // insight
	Detail   string `json:"detail,omitempty"`   // insight
	Severity string `json:"severity,omitempty"` // insight
	Label    string `json:"label,omitempty"`    // metric
	Value    string `json:"value,omitempty"`    // metric: the number or string as given
	Unit     string `json:"unit,omitempty"`     // metric

	// The element as parsed from the reply.
	Raw ast.Value `json:"-"`
}

// ParseAction converts an element of the actions array to an Action.
// Elements that are not objects have an empty Type.
func ParseAction(v ast.Value) Action {
	a := Action{Raw: v}
	obj, ok := v.(ast.Object)
	if !ok {
		return a
	}
	a.Type = stringField(obj, "_type")
	switch a.Type {
	case Think, Message:
		a.Text = stringField(obj, "text")
	case Insight:
		a.Title = stringField(obj, "title")
		a.Detail = stringField(obj, "detail")
		a.Severity = stringField(obj, "severity")
	case Metric:
		a.Label = stringField(obj, "label")
		a.Unit = stringField(obj, "unit")
		switch t := obj.Get("value").(type) {
		case ast.Number:
			a.Value = string(t)
		case ast.String:
			a.Value = string(t)
		}
	}
	return a
}

func stringField(obj ast.Object, key string) string {
	if s, ok := obj.Get(key).(ast.String); ok {
		return string(s)
	}
	return ""
}

// Known reports whether a has one of the known action types.
func (a Action) Known() bool {
	switch a.Type {
	case Think, Message, Insight, Metric:
		return true
	}
	return false
}

// String renders a as a line of plain text.
func (a Action) String() string {
	switch a.Type {
	case Think:
		return "(" + a.Text + ")"
	case Message:
		return a.Text
	case Insight:
		var sb strings.Builder
		if a.Severity != "" {
			fmt.Fprintf(&sb, "[%s] ", a.Severity)
		}
		sb.WriteString(a.Title)
		if a.Detail != "" {
			sb.WriteString(": ")
			sb.WriteString(a.Detail)
		}
		return sb.String()
	case Metric:
		return strings.TrimSpace(fmt.Sprintf("%s: %s %s", a.Label, a.Value, a.Unit))
	}
	if a.Raw == nil {
		return "<invalid action>"
	}
	return a.Raw.JSON()
}
