package wire

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/get-eventually/go-serde-shims/serde"
)

// Msgpack is the Serde mapping a Value to and from a MessagePack scalar.
//
// Integers are encoded with the exact width of the Value, and decoded
// from whatever width the payload carries.
//
//nolint:gochecknoglobals // Stateless serde.
var Msgpack = serde.FuseFuncs(encodeMsgpack, decodeMsgpack)

func encodeMsgpack(v Value) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeMsgpack(msgpack.NewEncoder(&buf), v); err != nil {
		return nil, fmt.Errorf("wire.Msgpack: failed to serialize value, %w", err)
	}

	return buf.Bytes(), nil
}

func decodeMsgpack(data []byte) (Value, error) {
	r := bytes.NewReader(data)

	value, err := readMsgpack(msgpack.NewDecoder(r))
	if err != nil {
		return Value{}, fmt.Errorf("wire.Msgpack: failed to deserialize value, %w", err)
	}

	if r.Len() > 0 {
		return Value{}, errors.New("wire.Msgpack: failed to deserialize value, trailing data after primitive")
	}

	return value, nil
}

func writeMsgpack(enc *msgpack.Encoder, v Value) error {
	if !v.IsValid() {
		return ErrUnexpectedKind
	}

	return enc.Encode(v.Interface())
}

func readMsgpack(dec *msgpack.Decoder) (Value, error) {
	raw, err := dec.DecodeInterface()
	if err != nil {
		return Value{}, err
	}

	return Of(raw)
}

// EncodeMsgpack serializes v through the given shim and writes the resulting
// Value to enc. It is meant to be called from a msgpack.CustomEncoder implementation.
func EncodeMsgpack[T any](enc *msgpack.Encoder, s serde.Serializer[T, Value], v T) error {
	value, err := s.Serialize(v)
	if err != nil {
		return err
	}

	if err := writeMsgpack(enc, value); err != nil {
		return fmt.Errorf("wire.EncodeMsgpack: failed to write value, %w", err)
	}

	return nil
}

// DecodeMsgpack reads a Value from dec and deserializes it through the given
// shim into dst. It is meant to be called from a msgpack.CustomDecoder implementation.
func DecodeMsgpack[T any](dec *msgpack.Decoder, d serde.Deserializer[T, Value], dst *T) error {
	value, err := readMsgpack(dec)
	if err != nil {
		return fmt.Errorf("wire.DecodeMsgpack: failed to read value, %w", err)
	}

	out, err := d.Deserialize(value)
	if err != nil {
		return err
	}

	*dst = out

	return nil
}
