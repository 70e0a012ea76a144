package serde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/get-eventually/go-serde-shims/serde"
)

func TestProto(t *testing.T) {
	factory := func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

	for name, mySerde := range map[string]serde.Fused[*wrapperspb.StringValue, []byte]{
		"binary": serde.NewProto(factory),
		"json":   serde.NewProtoJSON(factory),
	} {
		t.Run("it round-trips with "+name+" encoding", func(t *testing.T) {
			msg := wrapperspb.String("text/javascript")

			bytes, err := mySerde.Serialize(msg)
			require.NoError(t, err)

			deserialized, err := mySerde.Deserialize(bytes)
			require.NoError(t, err)
			assert.True(t, proto.Equal(msg, deserialized))
		})
	}

	t.Run("it fails on invalid protojson input", func(t *testing.T) {
		_, err := serde.NewProtoJSON(factory).Deserialize([]byte("{"))
		assert.ErrorContains(t, err, "serde.ProtoJSON: failed to deserialize data")
	})
}
