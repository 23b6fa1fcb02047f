// Package optional provides a tri-state value for partial updates.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	null
	set
)

// Field distinguishes an omitted value, an explicit null and a concrete value.
// The zero value is unset, so a Field left out of a JSON object stays unset.
type Field[T any] struct {
	state state
	value T
}

// Unset returns a field that was not supplied.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// Of returns a field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{state: set, value: v}
}

// Present reports whether the field was supplied at all (null or value).
func (f Field[T]) Present() bool {
	return f.state != unset
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool {
	return f.state == null
}

// Get returns the value and true when the field holds a concrete value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == set
}

// Ptr returns nil for unset or null fields and a pointer to a copy of the value otherwise.
func (f Field[T]) Ptr() *T {
	if f.state != set {
		return nil
	}
	v := f.value
	return &v
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys that are
// present in the document, which is what makes the unset state observable.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state, f.value = null, zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state, f.value = set, v
	return nil
}

// MarshalJSON implements json.Marshaler. Unset and null both encode as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
