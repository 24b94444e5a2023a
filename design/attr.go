package design

import (
	"bytes"
	"encoding/json"
)

// Attr is an optional style attribute: either a single uniform value or
// "mixed", meaning no single value holds across the styled range. Copying
// a style attribute onto another range is only meaningful for uniform
// values, so every consumer pattern-matches via Get rather than comparing
// against a sentinel.
type Attr[T any] struct {
	set bool
	val T
}

// Uniform wraps a concrete attribute value.
func Uniform[T any](v T) Attr[T] {
	return Attr[T]{set: true, val: v}
}

// Mixed returns the "no single value" attribute.
func Mixed[T any]() Attr[T] {
	return Attr[T]{}
}

// Get returns the value and whether it is uniform.
func (a Attr[T]) Get() (T, bool) {
	return a.val, a.set
}

// IsMixed reports whether the attribute has no single value.
func (a Attr[T]) IsMixed() bool {
	return !a.set
}

var jsonNull = []byte("null")

// MarshalJSON encodes mixed attributes as null.
func (a Attr[T]) MarshalJSON() ([]byte, error) {
	if !a.set {
		return jsonNull, nil
	}
	return json.Marshal(a.val)
}

// UnmarshalJSON decodes null (or an absent field) as mixed.
func (a *Attr[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*a = Mixed[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Attr[T]{set: true, val: v}
	return nil
}
