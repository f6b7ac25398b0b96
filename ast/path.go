// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import "fmt"

// Path traverses a sequential path through the structure of a value starting
// at v, where path elements are either strings (denoting object keys) or
// integers (denoting offsets into arrays).  If the path is valid, the element
// reached is returned.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves to the value of the object member with that name.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer resolves to an index in the array. Negative indices count
// backward from the end of the array (-1 is last, -2 second last, etc.).
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(Object)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %T with %q", cur, t)
			}
			m := obj.Find(t)
			if m == nil {
				return nil, fmt.Errorf("key %q not found", t)
			}
			cur = m.Value
		case int:
			arr, ok := cur.(Array)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %T with %d", cur, t)
			}
			i, ok := fixArrayBound(len(arr), t)
			if !ok {
				return nil, fmt.Errorf("array index %d out of bounds (n=%d)", t, len(arr))
			}
			cur = arr[i]
		default:
			return nil, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

// PathAs is a convenience wrapper for Path that also checks that the value
// reached has type T.
func PathAs[T Value](v Value, path ...any) (T, error) {
	var zero T
	got, err := Path(v, path...)
	if err != nil {
		return zero, err
	}
	out, ok := got.(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", got)
	}
	return out, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
