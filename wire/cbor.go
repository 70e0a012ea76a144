package wire

import (
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/get-eventually/go-serde-shims/serde"
)

// cborHandle is configured once and only read afterwards,
// which makes it safe for concurrent use.
//
//nolint:gochecknoglobals // Read-only after initialization.
var cborHandle = new(codec.CborHandle)

// CBOR is the Serde mapping a Value to and from a CBOR scalar.
//
// CBOR has no integer widths: positive integers are decoded as 64-bit
// unsigned, negative ones as 64-bit signed.
//
//nolint:gochecknoglobals // Stateless serde.
var CBOR = serde.FuseFuncs(encodeCBOR, decodeCBOR)

func encodeCBOR(v Value) ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("wire.CBOR: failed to serialize value, %w", ErrUnexpectedKind)
	}

	var data []byte
	if err := codec.NewEncoderBytes(&data, cborHandle).Encode(v.Interface()); err != nil {
		return nil, fmt.Errorf("wire.CBOR: failed to serialize value, %w", err)
	}

	return data, nil
}

func decodeCBOR(data []byte) (Value, error) {
	dec := codec.NewDecoderBytes(data, cborHandle)

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("wire.CBOR: failed to deserialize value, %w", err)
	}

	if dec.NumBytesRead() != len(data) {
		return Value{}, errors.New("wire.CBOR: failed to deserialize value, trailing data after primitive")
	}

	value, err := Of(raw)
	if err != nil {
		return Value{}, fmt.Errorf("wire.CBOR: failed to deserialize value, %w", err)
	}

	return value, nil
}
