// Package option provides serialization shims for optional values,
// represented in Go as pointers.
//
// SerializeNoneAsDefault serializes an absent value as the default value
// of the wrapped type, rather than as null. Useful for avoiding null values
// with integers, when many consumers consider zero to be "no value".
//
// The mapping is deliberately one-directional: on the wire, an absent value
// is indistinguishable from an explicit default value, so there is no
// corresponding deserializer.
package option

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"

	"github.com/get-eventually/go-serde-shims/serde"
)

// Defaulter is implemented by types whose default value is not their zero value.
type Defaulter[T any] interface {
	Default() T
}

// Default returns the default value of T: the result of its Default method,
// if T implements Defaulter, or its zero value otherwise.
//
// The default value of a pointer type is always nil: its Default method
// is never called, since the receiver would be a nil pointer.
func Default[T any]() T {
	var zeroValue T

	if reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Pointer {
		return zeroValue
	}

	if d, ok := any(zeroValue).(Defaulter[T]); ok {
		return d.Default()
	}

	return zeroValue
}

// SerializeNoneAsDefault returns a serializer of optional values of type T.
// Present values are serialized by inner, absent ones as inner would
// serialize the default value of T.
func SerializeNoneAsDefault[T any, Dst any](inner serde.Serializer[T, Dst]) serde.SerializerFunc[*T, Dst] {
	return func(value *T) (Dst, error) {
		if value == nil {
			return inner.Serialize(Default[T]())
		}

		return inner.Serialize(*value)
	}
}

// NoneAsDefault is an optional value that is serialized to JSON as the
// default value of T when absent.
//
// It implements json.Marshaler only: decoding must go through a plain *T field.
type NoneAsDefault[T any] struct {
	Value *T
}

// Some returns a present optional value.
func Some[T any](value T) NoneAsDefault[T] {
	return NoneAsDefault[T]{Value: &value}
}

// None returns an absent optional value.
func None[T any]() NoneAsDefault[T] {
	return NoneAsDefault[T]{Value: nil}
}

// IsSome reports whether the value is present.
func (o NoneAsDefault[T]) IsSome() bool { return o.Value != nil }

// Get returns the value if present, or the default value of T.
func (o NoneAsDefault[T]) Get() T {
	return lo.FromPtrOr(o.Value, Default[T]())
}

// MarshalJSON implements json.Marshaler.
func (o NoneAsDefault[T]) MarshalJSON() ([]byte, error) {
	data, err := serde.NewJSONSerializer[T]().Serialize(o.Get())
	if err != nil {
		return nil, fmt.Errorf("option.NoneAsDefault: failed to serialize value, %w", err)
	}

	return data, nil
}
