// Package enumprim provides serialization support for closed, integer-backed
// enumerations: a variant is serialized as its discriminant, and deserialized
// only if the discriminant matches one of the declared variants.
//
// Declare the shim once, next to the enumeration, and hook it into the
// marshaling methods of the type:
//
//	type Code uint8
//
//	const (
//		CodeA Code = 0
//		CodeB Code = 1
//		CodeC Code = 5
//		CodeD Code = 8
//	)
//
//	var codeShim = enumprim.New(enumprim.Variants(CodeA, CodeB, CodeC, CodeD))
//
//	func (c Code) MarshalJSON() ([]byte, error)     { return codeShim.MarshalJSON(c) }
//	func (c *Code) UnmarshalJSON(data []byte) error { return codeShim.UnmarshalJSON(data, c) }
package enumprim

import (
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/exp/constraints"

	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

// Lookup is the from-primitive capability of an enumeration:
// it returns the variant declared with the given discriminant, if any.
type Lookup[E constraints.Integer] func(discriminant uint64) (E, bool)

// Variants returns a Lookup accepting only the given declared variants.
func Variants[E constraints.Integer](variants ...E) Lookup[E] {
	known := make(map[uint64]E, len(variants))
	for _, variant := range variants {
		known[uint64(variant)] = variant
	}

	return func(discriminant uint64) (E, bool) {
		variant, ok := known[discriminant]
		return variant, ok
	}
}

// Shim serializes an enumeration E as its discriminant.
//
// A Shim is immutable and safe for concurrent use.
type Shim[E constraints.Integer] struct {
	name   string
	lookup Lookup[E]
}

// New returns a new Shim for the enumeration E, using lookup
// to validate discriminants on deserialization.
func New[E constraints.Integer](lookup Lookup[E], options ...Option) Shim[E] {
	cfg := newConfig(serde.TypeName[E](), options...)

	return Shim[E]{
		name:   cfg.name,
		lookup: lookup,
	}
}

// Name returns the enumeration name used in error messages.
func (s Shim[E]) Name() string { return s.name }

// Serialize returns the discriminant of the variant. It never fails.
func (s Shim[E]) Serialize(variant E) uint64 {
	return uint64(variant)
}

// Deserialize returns the variant with the given discriminant,
// or a *serde.ValidationError if the enumeration declares no such variant.
func (s Shim[E]) Deserialize(discriminant uint64) (E, error) {
	variant, ok := s.lookup(discriminant)
	if !ok {
		return 0, serde.Invalid(s.name, discriminant,
			"invalid primitive value %d for enum %s", discriminant, s.name)
	}

	return variant, nil
}

func (s Shim[E]) serializeValue(variant E) wire.Value {
	return wire.Uint64(s.Serialize(variant))
}

func (s Shim[E]) deserializeValue(value wire.Value) (E, error) {
	discriminant, err := value.AsUint64()
	if err != nil {
		return 0, serde.Invalid(s.name, value,
			"invalid type %s, expected %s as primitive numeric value", value, s.name).Wrap(err)
	}

	return s.Deserialize(discriminant)
}

// Serde returns the Shim as a serde.Serde to and from wire.Value,
// to be chained with a wire backend.
func (s Shim[E]) Serde() serde.Fused[E, wire.Value] {
	return serde.Fuse[E, wire.Value](
		serde.AsInfallibleSerializerFunc(s.serializeValue),
		serde.AsDeserializerFunc(s.deserializeValue),
	)
}

// MarshalJSON encodes the variant as a JSON number.
func (s Shim[E]) MarshalJSON(variant E) ([]byte, error) {
	return wire.MarshalJSON[E](s.Serde(), variant)
}

// UnmarshalJSON decodes a JSON number into dst, validating the discriminant.
func (s Shim[E]) UnmarshalJSON(data []byte, dst *E) error {
	return wire.UnmarshalJSON[E](s.Serde(), data, dst)
}

// EncodeMsgpack writes the variant as a MessagePack integer.
func (s Shim[E]) EncodeMsgpack(enc *msgpack.Encoder, variant E) error {
	return wire.EncodeMsgpack[E](enc, s.Serde(), variant)
}

// DecodeMsgpack reads a MessagePack integer of any width into dst,
// validating the discriminant.
func (s Shim[E]) DecodeMsgpack(dec *msgpack.Decoder, dst *E) error {
	return wire.DecodeMsgpack[E](dec, s.Serde(), dst)
}
