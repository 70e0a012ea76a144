package serde_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-serde-shims/serde"
)

func TestChained(t *testing.T) {
	mySerde := serde.Chain[paint, *paintJSON, []byte](
		paintSerde,
		serde.NewJSON(func() *paintJSON { return new(paintJSON) }),
	)

	t.Run("it round-trips valid data", func(t *testing.T) {
		data := paint{Color: colorGreen, Liters: 4}
		expected := []byte(`{"color":"green","liters":4}`)

		bytes, err := mySerde.Serialize(data)
		require.NoError(t, err)
		assert.Equal(t, expected, bytes)

		deserialized, err := mySerde.Deserialize(bytes)
		require.NoError(t, err)
		assert.Equal(t, data, deserialized)
	})

	t.Run("it fails when the first stage serializer fails", func(t *testing.T) {
		_, err := mySerde.Serialize(paint{Color: 42, Liters: 1})
		assert.ErrorContains(t, err, "first stage serializer failed")
	})

	t.Run("it keeps validation errors in the error chain", func(t *testing.T) {
		deserialized, err := mySerde.Deserialize([]byte(`{"color":"purple","liters":1}`))
		require.Error(t, err)
		assert.Zero(t, deserialized)

		var verr *serde.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "purple", verr.Value)
		assert.Equal(t, "serde_test.color", verr.Type)
	})
}

func TestChainSerializer(t *testing.T) {
	serializer := serde.ChainSerializer[int64, string, []byte](
		quantitySerde,
		serde.NewJSONSerializer[string](),
	)

	bytes, err := serializer.Serialize(42)
	require.NoError(t, err)
	assert.Equal(t, []byte(`"42"`), bytes)
}
