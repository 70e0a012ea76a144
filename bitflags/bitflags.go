// Package bitflags provides serialization support for flag sets: integers
// where each bit independently represents a named boolean flag.
//
// A flag set is serialized as its raw bit pattern, typed as the storage
// integer type. On deserialization any integer width is accepted, but
// the value is rejected if a bit outside the recognized flags is set.
//
//	type Permission uint32
//
//	const (
//		SendMessage Permission = 1 << iota
//		EditMessage
//		KickMember
//		BanMember
//	)
//
//	var permissions = bitflags.New([]bitflags.Flag[Permission]{
//		{Name: "SEND_MESSAGE", Bits: SendMessage},
//		{Name: "EDIT_MESSAGE", Bits: EditMessage},
//		{Name: "KICK_MEMBER", Bits: KickMember},
//		{Name: "BAN_MEMBER", Bits: BanMember},
//	})
//
//	func (p Permission) MarshalJSON() ([]byte, error)     { return permissions.MarshalJSON(p) }
//	func (p *Permission) UnmarshalJSON(data []byte) error { return permissions.UnmarshalJSON(data, p) }
package bitflags

import (
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/exp/constraints"

	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

// Flag is a named flag of a flag set.
// Bits usually has a single bit set, but composite flags are allowed.
type Flag[F constraints.Integer] struct {
	Name string
	Bits F
}

// Set describes the recognized flags of the flag set F, and serializes it.
//
// A Set is immutable and safe for concurrent use.
type Set[F constraints.Integer] struct {
	name  string
	all   F
	flags []Flag[F]
}

// New returns the Set of the given recognized flags.
func New[F constraints.Integer](flags []Flag[F], options ...Option) Set[F] {
	cfg := newConfig(serde.TypeName[F](), options...)

	var all F
	for _, flag := range flags {
		all |= flag.Bits
	}

	return Set[F]{
		name:  cfg.name,
		all:   all,
		flags: append([]Flag[F](nil), flags...),
	}
}

// Name returns the flag set name used in error messages.
func (s Set[F]) Name() string { return s.name }

// All returns the union of all recognized flags.
func (s Set[F]) All() F { return s.all }

// Empty returns the flag set with no flag set.
func (s Set[F]) Empty() F { return 0 }

// Contains reports whether all the flags in other are set in f.
func (s Set[F]) Contains(f, other F) bool { return f&other == other }

// FromBits returns the bits as a flag set, if they contain only recognized flags.
func (s Set[F]) FromBits(bits F) (F, bool) {
	if bits&^s.all != 0 {
		return 0, false
	}

	return bits, true
}

// FromBitsTruncate returns the bits as a flag set, dropping any unrecognized bit.
func (s Set[F]) FromBitsTruncate(bits F) F { return bits & s.all }

// Names returns the names of the flags set in f, in declaration order.
func (s Set[F]) Names(f F) []string {
	var names []string

	for _, flag := range s.flags {
		if flag.Bits != 0 && s.Contains(f, flag.Bits) {
			names = append(names, flag.Name)
		}
	}

	return names
}

// Serialize returns the bit pattern of f, typed as the storage type F.
func (s Set[F]) Serialize(f F) wire.Value {
	return wire.Integer(f)
}

// Deserialize accepts an integer of any width and signedness, reinterprets
// its bit pattern as F and validates it contains only recognized flags.
//
// Integers that do not fit the storage type are rejected.
// Failures are reported as *serde.ValidationError.
func (s Set[F]) Deserialize(value wire.Value) (F, error) {
	raw, err := value.Bits(wire.Width[F]())
	if err != nil {
		return 0, serde.Invalid(s.name, value,
			"invalid value %s, expected a valid bitflag combination for %s", value, s.name).Wrap(err)
	}

	f, ok := s.FromBits(F(raw))
	if !ok {
		return 0, serde.Invalid(s.name, value, "invalid bits 0x%X for %s", raw, s.name)
	}

	return f, nil
}

// Serde returns the Set as a serde.Serde to and from wire.Value,
// to be chained with a wire backend.
func (s Set[F]) Serde() serde.Fused[F, wire.Value] {
	return serde.Fuse[F, wire.Value](
		serde.AsInfallibleSerializerFunc(s.Serialize),
		serde.AsDeserializerFunc(s.Deserialize),
	)
}

// MarshalJSON encodes the flag set as a JSON number.
func (s Set[F]) MarshalJSON(f F) ([]byte, error) {
	return wire.MarshalJSON[F](s.Serde(), f)
}

// UnmarshalJSON decodes a JSON number into dst, validating the bits.
func (s Set[F]) UnmarshalJSON(data []byte, dst *F) error {
	return wire.UnmarshalJSON[F](s.Serde(), data, dst)
}

// EncodeMsgpack writes the flag set as a MessagePack integer of the storage width.
func (s Set[F]) EncodeMsgpack(enc *msgpack.Encoder, f F) error {
	return wire.EncodeMsgpack[F](enc, s.Serde(), f)
}

// DecodeMsgpack reads a MessagePack integer of any width into dst, validating the bits.
func (s Set[F]) DecodeMsgpack(dec *msgpack.Decoder, dst *F) error {
	return wire.DecodeMsgpack[F](dec, s.Serde(), dst)
}
