// Package wire defines the primitive wire representation exchanged between
// the shims and a serialization backend, and the backends themselves.
//
// A Value is either a string, a signed integer or an unsigned integer with
// a declared bit width. Backends decode into whatever integer width the
// encoding happens to carry (a MessagePack fixnum is an int8, a CBOR
// positive integer is an uint64, ...): Of normalizes all of them into a
// single canonical Value, so that shims only have to handle one form.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	// ErrUnexpectedKind is returned when a Value holds a different
	// kind of primitive than the one requested.
	ErrUnexpectedKind = errors.New("wire: unexpected primitive kind")

	// ErrOverflow is returned when an integer Value does not fit
	// the requested width.
	ErrOverflow = errors.New("wire: integer overflow")

	// ErrUnsupported is returned by Of when the Go value has no
	// primitive wire representation.
	ErrUnsupported = errors.New("wire: unsupported primitive")
)

// Kind is the kind of primitive held by a Value.
type Kind uint8

// All the supported Kind values.
const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindUint
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "signed integer"
	case KindUint:
		return "unsigned integer"
	default:
		return "invalid"
	}
}

// Value is a primitive wire value.
//
// The zero value is invalid. Use String, Integer, Int64 or Uint64 to build one.
type Value struct {
	kind  Kind
	width uint8
	str   string
	// Signed integers are stored sign-extended to 64 bits.
	bits uint64
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, width: 0, str: s, bits: 0}
}

// Integer returns an integer Value with the signedness and the width
// of the integer type T.
func Integer[T constraints.Integer](v T) Value {
	if Signed[T]() {
		return Value{kind: KindInt, width: Width[T](), str: "", bits: uint64(int64(v))}
	}

	return Value{kind: KindUint, width: Width[T](), str: "", bits: uint64(v)}
}

// Int64 returns a 64-bit signed integer Value.
func Int64(i int64) Value { return Integer(i) }

// Uint64 returns a 64-bit unsigned integer Value.
func Uint64(u uint64) Value { return Integer(u) }

// Width returns the size in bits of the integer type T.
func Width[T constraints.Integer]() uint8 {
	var width uint8
	for one := T(1); one != 0; one <<= 1 {
		width++
	}

	return width
}

// Signed reports whether the integer type T is signed.
func Signed[T constraints.Integer]() bool {
	var zero T
	return zero-1 < zero
}

// Kind returns the kind of primitive held by the Value.
func (v Value) Kind() Kind { return v.kind }

// Width returns the declared width in bits of an integer Value, or 0.
func (v Value) Width() uint8 { return v.width }

// IsValid reports whether v holds a primitive.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: expected string, found %s %s", ErrUnexpectedKind, v.kind, v)
	}

	return v.str, nil
}

// AsUint64 returns the integer held by v as an uint64.
// Negative integers are rejected.
func (v Value) AsUint64() (uint64, error) {
	switch v.kind {
	case KindUint:
		return v.bits, nil
	case KindInt:
		if int64(v.bits) < 0 {
			return 0, fmt.Errorf("%w: negative integer %s does not fit uint64", ErrOverflow, v)
		}

		return v.bits, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, found %s %s", ErrUnexpectedKind, v.kind, v)
	}
}

// AsInt64 returns the integer held by v as an int64.
func (v Value) AsInt64() (int64, error) {
	switch v.kind {
	case KindInt:
		return int64(v.bits), nil
	case KindUint:
		if v.bits > math.MaxInt64 {
			return 0, fmt.Errorf("%w: integer %s does not fit int64", ErrOverflow, v)
		}

		return int64(v.bits), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, found %s %s", ErrUnexpectedKind, v.kind, v)
	}
}

// Bits returns the two's complement bit pattern of the integer held by v,
// truncated to the given width (in bits, at most 64).
//
// The value must fit the width either as a signed or as an unsigned integer,
// so that the same bit pattern is accepted regardless of the signedness the
// backend chose for it: an int8(-1) and an uint8(255) both yield 0xFF for width 8,
// while an uint16(256) fails.
func (v Value) Bits(width uint8) (uint64, error) {
	mask := uint64(math.MaxUint64)
	if width < 64 {
		mask = uint64(1)<<width - 1
	}

	switch v.kind {
	case KindUint:
		if v.bits&^mask != 0 {
			return 0, fmt.Errorf("%w: %s does not fit %d bits", ErrOverflow, v, width)
		}

		return v.bits, nil
	case KindInt:
		i := int64(v.bits)
		if i >= 0 && v.bits&^mask != 0 {
			return 0, fmt.Errorf("%w: %s does not fit %d bits", ErrOverflow, v, width)
		}

		if i < 0 && width < 64 && i < -(int64(1)<<(width-1)) {
			return 0, fmt.Errorf("%w: %s does not fit %d bits", ErrOverflow, v, width)
		}

		return v.bits & mask, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, found %s %s", ErrUnexpectedKind, v.kind, v)
	}
}

// Interface returns the Go value held by v, using the Go type matching
// its kind and width exactly (e.g. int8 for a signed 8-bit Value).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		switch v.width {
		case 8:
			return int8(int64(v.bits))
		case 16:
			return int16(int64(v.bits))
		case 32:
			return int32(int64(v.bits))
		default:
			return int64(v.bits)
		}
	case KindUint:
		switch v.width {
		case 8:
			return uint8(v.bits)
		case 16:
			return uint16(v.bits)
		case 32:
			return uint32(v.bits)
		default:
			return v.bits
		}
	default:
		return nil
	}
}

// String implements fmt.Stringer, strings are quoted.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.FormatInt(int64(v.bits), 10)
	case KindUint:
		return strconv.FormatUint(v.bits, 10)
	default:
		return "<invalid>"
	}
}

// Of normalizes a primitive Go value, as produced by a decoding backend,
// into a Value.
//
// Every Go integer type is accepted, as well as json.Number holding an integer.
// Floating point numbers are rejected even when they have no fractional part,
// since they would not re-serialize to the same primitive.
func Of(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint:
		return Integer(x), nil
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	case uint64:
		return Integer(x), nil
	case json.Number:
		return parseNumber(string(x))
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

func parseNumber(s string) (Value, error) {
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %s, %w", ErrUnsupported, s, err)
		}

		return Int64(i), nil
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("%w: number %s, %w", ErrUnsupported, s, err)
	}

	return Uint64(u), nil
}
