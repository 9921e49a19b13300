package model

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes the three states a patch property can be in:
// absent from the payload, explicitly null, or set to a value.
type Nullable[T any] struct {
	Present bool
	Value   *T
}

// Set returns a present, non-null value.
func Set[T any](v T) Nullable[T] {
	return Nullable[T]{Present: true, Value: &v}
}

// Null returns a present value that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Present: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
