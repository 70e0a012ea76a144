package wire

import (
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/get-eventually/go-serde-shims/serde"
)

//nolint:gochecknoglobals // Stateless codec configuration.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON is the Serde mapping a Value to and from a JSON scalar.
//
// Numbers are decoded without going through float64, so the full
// int64 and uint64 ranges are preserved.
//
//nolint:gochecknoglobals // Stateless serde.
var JSON = serde.FuseFuncs(encodeJSON, decodeJSON)

func encodeJSON(v Value) ([]byte, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("wire.JSON: failed to serialize value, %w", ErrUnexpectedKind)
	}

	data, err := jsonAPI.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("wire.JSON: failed to serialize value, %w", err)
	}

	return data, nil
}

func decodeJSON(data []byte) (Value, error) {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	var (
		value Value
		err   error
	)

	switch next := iter.WhatIsNext(); next {
	case jsoniter.StringValue:
		value = String(iter.ReadString())
	case jsoniter.NumberValue:
		value, err = parseJSONInteger(string(iter.ReadNumber()))
	default:
		return Value{}, fmt.Errorf("wire.JSON: failed to deserialize value, %w: expected string or integer", ErrUnsupported)
	}

	if err != nil {
		return Value{}, fmt.Errorf("wire.JSON: failed to deserialize value, %w", err)
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return Value{}, fmt.Errorf("wire.JSON: failed to deserialize value, %w", iter.Error)
	}

	// Only whitespace may follow the primitive: the iterator must hit the end of input.
	iter.WhatIsNext()

	if !errors.Is(iter.Error, io.EOF) {
		return Value{}, errors.New("wire.JSON: failed to deserialize value, trailing data after primitive")
	}

	return value, nil
}

// parseJSONInteger parses a JSON number token as read by the iterator,
// which does not validate it against the JSON number grammar.
func parseJSONInteger(s string) (Value, error) {
	digits := strings.TrimPrefix(s, "-")

	if len(digits) > 1 && digits[0] == '0' {
		return Value{}, fmt.Errorf("%w: number %s has a leading zero", ErrUnsupported, s)
	}

	return parseNumber(s)
}

// MarshalJSON serializes v through the given shim and encodes the resulting
// Value to JSON. It is meant to be called from a json.Marshaler implementation.
func MarshalJSON[T any](s serde.Serializer[T, Value], v T) ([]byte, error) {
	return serde.ChainSerializer[T, Value, []byte](s, JSON).Serialize(v)
}

// UnmarshalJSON decodes a Value from JSON and deserializes it through the given
// shim into dst. It is meant to be called from a json.Unmarshaler implementation.
func UnmarshalJSON[T any](d serde.Deserializer[T, Value], data []byte, dst *T) error {
	value, err := JSON.Deserialize(data)
	if err != nil {
		return err
	}

	out, err := d.Deserialize(value)
	if err != nil {
		return err
	}

	*dst = out

	return nil
}
