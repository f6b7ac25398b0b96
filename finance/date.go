// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// A Date is a calendar date with no time of day. It is encoded in JSON as a
// string of the form "2006-01-02", or null for the zero date.
type Date struct{ time.Time }

// NewDate returns the date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the local time zone.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a date of the form "2006-01-02". The empty string parses
// as the zero date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// AddMonths returns the date n months after d.
func (d Date) AddMonths(n int) Date { return Date{d.AddDate(0, n, 0)} }

// MonthsUntil returns the number of whole calendar months from d to e,
// which is negative if e precedes d.
func (d Date) MonthsUntil(e Date) int {
	n := (e.Year()-d.Year())*12 + int(e.Month()-d.Month())
	if e.Day() < d.Day() {
		n--
	}
	return n
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// A Period is an inclusive range of dates.
type Period struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Month returns the period covering the given calendar month.
func Month(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	return Period{Start: start, End: Date{start.AddDate(0, 1, -1)}}
}

// ParseMonth parses a month of the form "2006-01" as a Period.
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month(t.Year(), t.Month()), nil
}

// Contains reports whether d falls within p. The zero Period contains every
// date.
func (p Period) Contains(d Date) bool {
	if p.IsZero() {
		return true
	}
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

func (p Period) String() string { return p.Start.String() + ".." + p.End.String() }
