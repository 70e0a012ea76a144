package enumprim_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/get-eventually/go-serde-shims/enumprim"
	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

type Code uint8

const (
	CodeA Code = 0
	CodeB Code = 1
	CodeC Code = 5
	CodeD Code = 8
)

var codeShim = enumprim.New(enumprim.Variants(CodeA, CodeB, CodeC, CodeD), enumprim.WithName("Codes"))

func (c Code) MarshalJSON() ([]byte, error)     { return codeShim.MarshalJSON(c) }
func (c *Code) UnmarshalJSON(data []byte) error { return codeShim.UnmarshalJSON(data, c) }

func (c Code) EncodeMsgpack(enc *msgpack.Encoder) error  { return codeShim.EncodeMsgpack(enc, c) }
func (c *Code) DecodeMsgpack(dec *msgpack.Decoder) error { return codeShim.DecodeMsgpack(dec, c) }

type Signal int16

const (
	SignalDown Signal = -1
	SignalIdle Signal = 0
	SignalUp   Signal = 1
)

func TestShim(t *testing.T) {
	t.Run("it serializes variants as their discriminant", func(t *testing.T) {
		assert.Equal(t, uint64(5), codeShim.Serialize(CodeC))
		assert.Equal(t, "Codes", codeShim.Name())
	})

	t.Run("it round-trips every declared variant", func(t *testing.T) {
		for _, code := range []Code{CodeA, CodeB, CodeC, CodeD} {
			deserialized, err := codeShim.Deserialize(codeShim.Serialize(code))
			require.NoError(t, err)
			assert.Equal(t, code, deserialized)
		}
	})

	t.Run("it rejects undeclared discriminants", func(t *testing.T) {
		for _, discriminant := range []uint64{2, 3, 4, 6, 7, 9, 16, 256 + 5} {
			_, err := codeShim.Deserialize(discriminant)

			var verr *serde.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Codes", verr.Type)
			assert.Equal(t, discriminant, verr.Value)
		}

		_, err := codeShim.Deserialize(16)
		assert.EqualError(t, err, "serde: invalid primitive value 16 for enum Codes")
	})

	t.Run("it defaults the name to the Go type name", func(t *testing.T) {
		shim := enumprim.New(enumprim.Variants(SignalDown, SignalIdle, SignalUp))
		assert.Equal(t, "enumprim_test.Signal", shim.Name())
	})

	t.Run("it supports negative discriminants", func(t *testing.T) {
		shim := enumprim.New(enumprim.Variants(SignalDown, SignalIdle, SignalUp))
		jsonSerde := serde.Chain[Signal, wire.Value, []byte](shim.Serde(), wire.JSON)

		data, err := jsonSerde.Serialize(SignalDown)
		require.NoError(t, err)

		deserialized, err := jsonSerde.Deserialize(data)
		require.NoError(t, err)
		assert.Equal(t, SignalDown, deserialized)
	})
}

func TestShim_JSON(t *testing.T) {
	t.Run("it works as a json.Marshaler", func(t *testing.T) {
		data, err := json.Marshal(CodeC)
		require.NoError(t, err)
		assert.Equal(t, "5", string(data))

		var code Code
		require.NoError(t, json.Unmarshal([]byte("8"), &code))
		assert.Equal(t, CodeD, code)
	})

	t.Run("it fails on unknown discriminants", func(t *testing.T) {
		var code Code
		err := json.Unmarshal([]byte("16"), &code)
		assert.True(t, serde.IsValidationError(err))
	})

	t.Run("it fails on negative numbers and strings", func(t *testing.T) {
		var code Code
		assert.Error(t, json.Unmarshal([]byte("-1"), &code))
		assert.Error(t, json.Unmarshal([]byte(`"5"`), &code))
	})

	t.Run("it works inside structs", func(t *testing.T) {
		type response struct {
			Code  Code   `json:"code"`
			Codes []Code `json:"codes"`
		}

		expected := response{Code: CodeB, Codes: []Code{CodeA, CodeD}}

		data, err := json.Marshal(expected)
		require.NoError(t, err)
		assert.JSONEq(t, `{"code":1,"codes":[0,8]}`, string(data))

		var actual response
		require.NoError(t, json.Unmarshal(data, &actual))
		assert.Equal(t, expected, actual)
	})
}

func TestShim_Backends(t *testing.T) {
	backends := map[string]serde.Serde[wire.Value, []byte]{
		"msgpack": wire.Msgpack,
		"cbor":    wire.CBOR,
		"proto":   wire.Proto,
	}

	for name, backend := range backends {
		t.Run("it round-trips with "+name, func(t *testing.T) {
			codeSerde := serde.Chain[Code, wire.Value, []byte](codeShim.Serde(), backend)

			data, err := codeSerde.Serialize(CodeD)
			require.NoError(t, err)

			deserialized, err := codeSerde.Deserialize(data)
			require.NoError(t, err)
			assert.Equal(t, CodeD, deserialized)
		})
	}

	t.Run("it accepts any integer width from msgpack", func(t *testing.T) {
		for _, raw := range []any{int8(5), uint8(5), int16(5), uint32(5), int64(5), uint64(5)} {
			data, err := msgpack.Marshal(raw)
			require.NoError(t, err)

			var code Code
			require.NoError(t, msgpack.Unmarshal(data, &code), "%T", raw)
			assert.Equal(t, CodeC, code)
		}
	})

	t.Run("it rejects floats from msgpack", func(t *testing.T) {
		for _, raw := range []any{float32(5), float64(5)} {
			data, err := msgpack.Marshal(raw)
			require.NoError(t, err)

			var code Code
			assert.ErrorIs(t, msgpack.Unmarshal(data, &code), wire.ErrUnsupported, "%T", raw)
			assert.Zero(t, code)
		}
	})

	t.Run("it works as a msgpack custom encoder", func(t *testing.T) {
		data, err := msgpack.Marshal(CodeB)
		require.NoError(t, err)

		var code Code
		require.NoError(t, msgpack.Unmarshal(data, &code))
		assert.Equal(t, CodeB, code)

		bad, err := msgpack.Marshal(uint64(16))
		require.NoError(t, err)
		assert.Error(t, msgpack.Unmarshal(bad, &code))
	})
}

func TestShim_Concurrency(t *testing.T) {
	var group errgroup.Group

	for i := 0; i < 64; i++ {
		i := i

		group.Go(func() error {
			code := []Code{CodeA, CodeB, CodeC, CodeD}[i%4]

			data, err := codeShim.MarshalJSON(code)
			if err != nil {
				return err
			}

			var out Code
			if err := codeShim.UnmarshalJSON(data, &out); err != nil {
				return err
			}

			if out != code {
				return fmt.Errorf("unexpected code, %d != %d", out, code)
			}

			return nil
		})
	}

	require.NoError(t, group.Wait())
}
