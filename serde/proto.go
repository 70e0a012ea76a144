package serde

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type protoFormat struct {
	name      string
	marshal   func(proto.Message) ([]byte, error)
	unmarshal func([]byte, proto.Message) error
}

//nolint:gochecknoglobals // Read-only lookup values.
var (
	protoBinary = protoFormat{
		name:      "serde.Proto",
		marshal:   proto.Marshal,
		unmarshal: proto.Unmarshal,
	}

	protoJSON = protoFormat{
		name:      "serde.ProtoJSON",
		marshal:   protojson.Marshal,
		unmarshal: protojson.Unmarshal,
	}
)

func newProtoSerializer[T proto.Message](format protoFormat) SerializerFunc[T, []byte] {
	return func(t T) ([]byte, error) {
		data, err := format.marshal(t)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to serialize data, %w", format.name, err)
		}

		return data, nil
	}
}

func newProtoDeserializer[T proto.Message](format protoFormat, factory func() T) DeserializerFunc[T, []byte] {
	return func(data []byte) (T, error) {
		var zeroValue T

		model := factory()
		if err := format.unmarshal(data, model); err != nil {
			return zeroValue, fmt.Errorf("%s: failed to deserialize data, %w", format.name, err)
		}

		return model, nil
	}
}

// NewProtoSerializer returns a serializer function where the input data (T)
// gets serialized to Protobuf byte-array.
func NewProtoSerializer[T proto.Message]() SerializerFunc[T, []byte] {
	return newProtoSerializer[T](protoBinary)
}

// NewProtoDeserializer returns a deserializer function where a byte-array
// is deserialized into a destination data type (T) using Protobuf.
//
// A data factory function is required for creating new instances of type `T`
// (especially if pointer semantics is used).
func NewProtoDeserializer[T proto.Message](factory func() T) DeserializerFunc[T, []byte] {
	return newProtoDeserializer(protoBinary, factory)
}

// NewProto returns a new serde instance where some data (`T`) gets serialized to
// and deserialized from a Protobuf byte-array.
func NewProto[T proto.Message](factory func() T) Fused[T, []byte] {
	return Fuse[T, []byte](
		NewProtoSerializer[T](),
		NewProtoDeserializer(factory),
	)
}

// NewProtoJSONSerializer returns a serializer function where the input data (T)
// gets serialized to Protobuf JSON byte-array data.
func NewProtoJSONSerializer[T proto.Message]() SerializerFunc[T, []byte] {
	return newProtoSerializer[T](protoJSON)
}

// NewProtoJSONDeserializer returns a deserializer function where a byte-array
// is deserialized into a destination model type (T) using Protobuf JSON.
func NewProtoJSONDeserializer[T proto.Message](factory func() T) DeserializerFunc[T, []byte] {
	return newProtoDeserializer(protoJSON, factory)
}

// NewProtoJSON returns a new serde instance where some data (`T`) gets serialized to
// and deserialized from Protobuf JSON.
func NewProtoJSON[T proto.Message](factory func() T) Fused[T, []byte] {
	return Fuse[T, []byte](
		NewProtoJSONSerializer[T](),
		NewProtoJSONDeserializer(factory),
	)
}
