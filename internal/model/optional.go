package model

import (
	"bytes"
	"encoding/json"
)

// Optional tracks whether a JSON field was present in a request body.
//
// Absent leaves Set false. An explicit null sets Set and Null. Anything else
// sets Set and decodes into Value. Use `json:",omitzero"` to round-trip.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present Optional holding an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero lets `omitzero` drop absent fields.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// Arg is the value to hand to a query: nil for null, Value otherwise.
func (o Optional[T]) Arg() any {
	if o.Null {
		return nil
	}
	return o.Value
}

// Get returns the value and whether it is present and non-null.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}
