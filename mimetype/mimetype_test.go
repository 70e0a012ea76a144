package mimetype_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-eventually/go-serde-shims/mimetype"
	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

func TestParse(t *testing.T) {
	t.Run("it parses type, subtype and parameters", func(t *testing.T) {
		mt, err := mimetype.Parse(`Text/HTML; Charset="UTF-8"`)
		require.NoError(t, err)

		assert.Equal(t, "text", mt.Type)
		assert.Equal(t, "html", mt.Subtype)
		assert.Equal(t, "text/html", mt.Essence())

		charset, ok := mt.Param("CHARSET")
		assert.True(t, ok)
		assert.Equal(t, "UTF-8", charset)
		assert.Equal(t, "text/html; charset=UTF-8", mt.String())
	})

	t.Run("it rejects media types without subtype", func(t *testing.T) {
		_, err := mimetype.Parse("invalid")
		assert.ErrorIs(t, err, mimetype.ErrMissingSlash)

		for _, s := range []string{"", "text/", "/plain", "text/plain; charset"} {
			_, err := mimetype.Parse(s)
			assert.Error(t, err, s)
		}
	})

	t.Run("it compares canonical forms", func(t *testing.T) {
		assert.True(t, mimetype.TextPlainUTF8.Equal(mimetype.MustParse("TEXT/plain;charset=utf-8")))
		assert.False(t, mimetype.TextPlainUTF8.Equal(mimetype.TextPlain))
	})

	t.Run("it compares hand-built values field by field", func(t *testing.T) {
		withParam := func(value string) mimetype.MediaType {
			return mimetype.MediaType{Type: "Text", Subtype: "plain", Params: map[string]string{"Not a token": value}}
		}

		assert.True(t, withParam("1").Equal(withParam("1")))
		assert.False(t, withParam("1").Equal(withParam("2")))
		assert.False(t, withParam("1").Equal(mimetype.TextPlain))
		assert.True(t, mimetype.MediaType{Type: "TEXT", Subtype: "Plain", Params: nil}.Equal(mimetype.TextPlain))
	})

	t.Run("it does not accept the zero value back", func(t *testing.T) {
		var zeroValue mimetype.MediaType

		_, err := mimetype.Deserialize(mimetype.Serialize(zeroValue))
		assert.True(t, serde.IsValidationError(err))
	})

	t.Run("MustParse panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { mimetype.MustParse("invalid") })
	})
}

func TestSerde(t *testing.T) {
	t.Run("it serializes the canonical string", func(t *testing.T) {
		assert.Equal(t, "text/javascript", mimetype.Serialize(mimetype.TextJavaScript))
	})

	t.Run("it deserializes valid media types", func(t *testing.T) {
		mt, err := mimetype.Deserialize("text/javascript")
		require.NoError(t, err)
		assert.True(t, mimetype.TextJavaScript.Equal(mt))
	})

	t.Run("it reports parse failures as validation errors", func(t *testing.T) {
		_, err := mimetype.Deserialize("invalid")

		var verr *serde.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "invalid", verr.Value)
		assert.Equal(t, "mimetype.MediaType", verr.Type)
		assert.ErrorIs(t, err, mimetype.ErrMissingSlash)
		assert.Contains(t, err.Error(), `"invalid"`)
	})

	t.Run("it chains with wire backends", func(t *testing.T) {
		jsonSerde := serde.Chain[mimetype.MediaType, wire.Value, []byte](mimetype.Serde(), wire.JSON)

		data, err := jsonSerde.Serialize(mimetype.TextJavaScript)
		require.NoError(t, err)
		assert.Equal(t, `"text/javascript"`, string(data))

		mt, err := jsonSerde.Deserialize(data)
		require.NoError(t, err)
		assert.True(t, mimetype.TextJavaScript.Equal(mt))

		_, err = jsonSerde.Deserialize([]byte(`"invalid"`))
		assert.True(t, serde.IsValidationError(err))

		_, err = jsonSerde.Deserialize([]byte(`42`))
		assert.True(t, serde.IsValidationError(err))

		_, err = jsonSerde.Deserialize([]byte(`invalid`))
		assert.Error(t, err)
	})
}

type mimeTest struct {
	Mime  mimetype.Wrapper    `json:"mime"`
	Mimes []mimetype.Wrapper  `json:"mimes,omitempty"`
	Maybe *[]mimetype.Wrapper `json:"maybe,omitempty"`
}

func TestWrapper(t *testing.T) {
	t.Run("it works as a struct field", func(t *testing.T) {
		test := mimeTest{Mime: mimetype.Wrap(mimetype.TextJavaScript), Mimes: nil, Maybe: nil}
		expected := `{"mime":"text/javascript"}`

		data, err := json.Marshal(test)
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))

		var actual mimeTest
		require.NoError(t, json.Unmarshal(data, &actual))
		assert.True(t, actual.Mime.EqualString("text/javascript"))

		assert.Error(t, json.Unmarshal([]byte("invalid"), &actual))
		assert.Error(t, json.Unmarshal([]byte(`{"mime":"invalid"}`), &actual))
	})

	t.Run("it supports nested types", func(t *testing.T) {
		wrapped := []mimetype.Wrapper{mimetype.Wrap(mimetype.TextJavaScript), mimetype.Wrap(mimetype.ApplicationJSON)}
		test := mimeTest{Mime: mimetype.Wrap(mimetype.TextPlain), Mimes: nil, Maybe: &wrapped}

		data, err := json.Marshal(test)
		require.NoError(t, err)
		assert.JSONEq(t, `{"mime":"text/plain","maybe":["text/javascript","application/json"]}`, string(data))

		var actual mimeTest
		require.NoError(t, json.Unmarshal(data, &actual))
		require.NotNil(t, actual.Maybe)
		require.Len(t, *actual.Maybe, 2)
		assert.True(t, (*actual.Maybe)[1].Equal(mimetype.ApplicationJSON))
	})

	t.Run("it is transparent", func(t *testing.T) {
		w, err := mimetype.ParseWrapper("text/plain; charset=utf-8")
		require.NoError(t, err)

		assert.Equal(t, "text", w.Type)
		assert.Equal(t, "text/plain", w.Essence())
		assert.True(t, w.Equal(mimetype.TextPlainUTF8))
		assert.True(t, w.EqualString("TEXT/Plain;charset=utf-8"))
		assert.False(t, w.EqualString("invalid"))
		assert.True(t, w.Unwrap().Equal(mimetype.TextPlainUTF8))

		assert.Equal(t, "text/plain; charset=utf-8", fmt.Sprint(w))
		assert.Equal(t, `mimetype.Wrapper("text/plain; charset=utf-8")`, fmt.Sprintf("%#v", w))

		_, err = mimetype.ParseWrapper("invalid")
		assert.Error(t, err)
	})

	t.Run("it works as a text marshaler", func(t *testing.T) {
		text, err := mimetype.Wrap(mimetype.ImagePNG).MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "image/png", string(text))

		var w mimetype.Wrapper
		require.NoError(t, w.UnmarshalText([]byte("IMAGE/PNG")))
		assert.True(t, w.Equal(mimetype.ImagePNG))

		assert.True(t, serde.IsValidationError(w.UnmarshalText([]byte("image"))))
	})
}
