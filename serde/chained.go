package serde

import (
	"fmt"
)

// Chained is a serde type that allows to chain two separate serdes,
// to map from an Src to a Dst type, using a common supporting type in the middle (Mid).
//
// The typical use is chaining a shim (foreign type to wire.Value) with
// a wire backend (wire.Value to bytes).
type Chained[Src any, Mid any, Dst any] struct {
	first  Serde[Src, Mid]
	second Serde[Mid, Dst]
}

// Serialize implements the serde.Serializer interface.
func (s Chained[Src, Mid, Dst]) Serialize(src Src) (Dst, error) {
	return chainSerialize[Src, Mid, Dst](s.first, s.second, src)
}

// Deserialize implements the serde.Deserializer interface.
func (s Chained[Src, Mid, Dst]) Deserialize(dst Dst) (Src, error) {
	var zeroValue Src

	mid, err := s.second.Deserialize(dst)
	if err != nil {
		return zeroValue, fmt.Errorf("serde.Chained: first stage deserializer failed, %w", err)
	}

	src, err := s.first.Deserialize(mid)
	if err != nil {
		return zeroValue, fmt.Errorf("serde.Chained: second stage deserializer failed, %w", err)
	}

	return src, nil
}

// Chain chains together two serdes to build a new serde instance to map from Src to Dst types.
func Chain[Src any, Mid any, Dst any](first Serde[Src, Mid], second Serde[Mid, Dst]) Chained[Src, Mid, Dst] {
	return Chained[Src, Mid, Dst]{
		first:  first,
		second: second,
	}
}

// ChainSerializer chains two serializers together, for those shims
// that only provide one direction of the mapping.
func ChainSerializer[Src any, Mid any, Dst any](
	first Serializer[Src, Mid],
	second Serializer[Mid, Dst],
) SerializerFunc[Src, Dst] {
	return func(src Src) (Dst, error) {
		return chainSerialize(first, second, src)
	}
}

func chainSerialize[Src any, Mid any, Dst any](
	first Serializer[Src, Mid],
	second Serializer[Mid, Dst],
	src Src,
) (Dst, error) {
	var zeroValue Dst

	mid, err := first.Serialize(src)
	if err != nil {
		return zeroValue, fmt.Errorf("serde.Chained: first stage serializer failed, %w", err)
	}

	dst, err := second.Serialize(mid)
	if err != nil {
		return zeroValue, fmt.Errorf("serde.Chained: second stage serializer failed, %w", err)
	}

	return dst, nil
}
