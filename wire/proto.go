package wire

import (
	"fmt"

	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/get-eventually/go-serde-shims/serde"
)

// ProtoAny is the Serde mapping a Value to and from the well-known
// Protobuf wrapper types, packed in an anypb.Any.
//
// Integers up to 32 bits use the Int32Value and UInt32Value wrappers,
// wider ones the 64-bit wrappers.
//
//nolint:gochecknoglobals // Stateless serde.
var ProtoAny = serde.FuseFuncs(valueToProto, valueFromProto)

// Proto is the Serde mapping a Value to and from Protobuf binary encoding,
// through ProtoAny.
//
//nolint:gochecknoglobals // Stateless serde.
var Proto = serde.Chain[Value, *anypb.Any, []byte](
	ProtoAny,
	serde.NewProto(func() *anypb.Any { return new(anypb.Any) }),
)

func valueToProto(v Value) (*anypb.Any, error) {
	var (
		packed *anypb.Any
		err    error
	)

	switch v.kind {
	case KindString:
		packed, err = anypb.New(wrapperspb.String(v.str))
	case KindInt:
		if v.width <= 32 {
			packed, err = anypb.New(wrapperspb.Int32(int32(int64(v.bits))))
		} else {
			packed, err = anypb.New(wrapperspb.Int64(int64(v.bits)))
		}
	case KindUint:
		if v.width <= 32 {
			packed, err = anypb.New(wrapperspb.UInt32(uint32(v.bits)))
		} else {
			packed, err = anypb.New(wrapperspb.UInt64(v.bits))
		}
	default:
		err = ErrUnexpectedKind
	}

	if err != nil {
		return nil, fmt.Errorf("wire.ProtoAny: failed to serialize value, %w", err)
	}

	return packed, nil
}

func valueFromProto(packed *anypb.Any) (Value, error) {
	msg, err := packed.UnmarshalNew()
	if err != nil {
		return Value{}, fmt.Errorf("wire.ProtoAny: failed to deserialize value, %w", err)
	}

	switch m := msg.(type) {
	case *wrapperspb.StringValue:
		return String(m.GetValue()), nil
	case *wrapperspb.Int32Value:
		return Integer(m.GetValue()), nil
	case *wrapperspb.Int64Value:
		return Integer(m.GetValue()), nil
	case *wrapperspb.UInt32Value:
		return Integer(m.GetValue()), nil
	case *wrapperspb.UInt64Value:
		return Integer(m.GetValue()), nil
	default:
		return Value{}, fmt.Errorf("wire.ProtoAny: failed to deserialize value, %w: %T", ErrUnsupported, msg)
	}
}
