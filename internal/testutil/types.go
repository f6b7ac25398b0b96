// Package testutil defines support code for unit tests.
package testutil

import (
	"reflect"
	"strconv"
	"strings"
)

// Prefixes returns every prefix of s, from empty to s itself.
func Prefixes(s string) []string {
	out := make([]string, 0, len(s)+1)
	for i := range len(s) + 1 {
		out = append(out, s[:i])
	}
	return out
}

// Consistent reports whether part is a prefix-consistent reconstruction of
// full, where both are plain values of the kinds produced by decoding JSON
// into an any (map[string]any, []any, string, float64, bool, nil).
//
// An object is consistent if each of its keys appears in full with a
// consistent value. An array is consistent if it is no longer than the full
// array and each element is consistent with the corresponding element. A
// string is consistent if it is a prefix of the full string. A number is
// consistent if its decimal form is a prefix of the full number's decimal
// form, since a stream may be cut off between its digits. Other values must
// be equal.
func Consistent(part, full any) bool {
	switch p := part.(type) {
	case map[string]any:
		f, ok := full.(map[string]any)
		if !ok {
			return false
		}
		for k, pv := range p {
			fv, ok := f[k]
			if !ok || !Consistent(pv, fv) {
				return false
			}
		}
		return true
	case []any:
		f, ok := full.([]any)
		if !ok || len(p) > len(f) {
			return false
		}
		for i, pv := range p {
			if !Consistent(pv, f[i]) {
				return false
			}
		}
		return true
	case string:
		f, ok := full.(string)
		return ok && strings.HasPrefix(f, p)
	case float64:
		f, ok := full.(float64)
		return ok && strings.HasPrefix(formatFloat(f), formatFloat(p))
	default:
		return reflect.DeepEqual(part, full)
	}
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
