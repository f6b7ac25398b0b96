// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package finance

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

// ParseLedger parses a ledger from JWCC (JSON with commas and comments)
// text and validates its contents. Unknown fields are an error.
func ParseLedger(data []byte) (*Ledger, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	var l Ledger
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger: %w", err)
	}
	return &l, nil
}
