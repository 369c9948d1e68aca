// Package optional provides a tagged "unset or set to a value" type for partial
// updates, so that set-to-empty and absent are distinguishable.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"
)

type Option[T any] []T

func None[T any]() Option[T] {
	return nil
}

func Some[T any](v T) Option[T] {
	return Option[T]{v}
}

func FromPtr[T any](v *T) Option[T] {
	if v == nil {
		return None[T]()
	}
	return Some(*v)
}

func (o Option[T]) Has() bool {
	return o != nil
}

func (o Option[T]) Value() T {
	var zero T
	return o.ValueOrDefault(zero)
}

func (o Option[T]) ValueOrDefault(v T) T {
	if o.Has() {
		return o[0]
	}
	return v
}

// UnmarshalJSON is only invoked for keys present in the document, so absent keys
// stay None. An explicit null is Some(nil) when T is a pointer, so it can clear a
// nullable field; for any other T null means no change and stays None.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) && reflect.TypeOf((*T)(nil)).Elem().Kind() != reflect.Pointer {
		*o = None[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.Has() {
		return []byte("null"), nil
	}
	return json.Marshal(o[0])
}
