// Package mimetype provides serialization support for MIME media types.
//
// A MediaType is serialized as its canonical string form (e.g. "text/javascript"),
// and deserialized by parsing it with the RFC 2045 and RFC 2616 grammar:
// a parse failure is reported as a *serde.ValidationError.
//
// Use the Wrapper type to get the serialization support directly on a field,
// including nested ones (e.g. []Wrapper or *Wrapper).
package mimetype

import (
	"errors"
	"fmt"
	"maps"
	"mime"
	"strings"

	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

const typeName = "mimetype.MediaType"

// ErrMissingSlash is returned by Parse when the media type has no subtype.
var ErrMissingSlash = errors.New("mimetype: a slash (/) was missing between the type and subtype")

// Well-known media types.
//
//nolint:gochecknoglobals // Read-only values.
var (
	TextPlain              = MustParse("text/plain")
	TextPlainUTF8          = MustParse("text/plain; charset=utf-8")
	TextHTML               = MustParse("text/html")
	TextCSS                = MustParse("text/css")
	TextCSV                = MustParse("text/csv")
	TextJavaScript         = MustParse("text/javascript")
	ApplicationJSON        = MustParse("application/json")
	ApplicationOctetStream = MustParse("application/octet-stream")
	ApplicationMsgpack     = MustParse("application/msgpack")
	ApplicationProtobuf    = MustParse("application/x-protobuf")
	ApplicationCBOR        = MustParse("application/cbor")
	ImagePNG               = MustParse("image/png")
	MultipartFormData      = MustParse("multipart/form-data")
)

// MediaType is a parsed MIME media type.
//
// Type, Subtype and parameter names are always lower case on values
// returned by Parse. Use Equal to compare two media types, as Params is a map.
//
// The zero value is not a valid media type: it serializes as "/",
// which Deserialize rejects.
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Parse parses a media type, with optional parameters.
func Parse(s string) (MediaType, error) {
	essence, params, err := mime.ParseMediaType(s)
	if err != nil {
		return MediaType{}, err
	}

	typ, subtype, found := strings.Cut(essence, "/")
	if !found || subtype == "" {
		return MediaType{}, ErrMissingSlash
	}

	return MediaType{Type: typ, Subtype: subtype, Params: params}, nil
}

// MustParse is like Parse, but panics on error.
func MustParse(s string) MediaType {
	mt, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("mimetype.MustParse: %q, %v", s, err))
	}

	return mt
}

// Essence returns the media type without parameters, e.g. "text/plain".
func (mt MediaType) Essence() string {
	return mt.Type + "/" + mt.Subtype
}

// Param returns the value of the named parameter, if present.
func (mt MediaType) Param(name string) (string, bool) {
	value, ok := mt.Params[strings.ToLower(name)]
	return value, ok
}

// String returns the canonical form of the media type,
// with parameters sorted by name and quoted when needed.
func (mt MediaType) String() string {
	if s := mime.FormatMediaType(mt.Essence(), mt.Params); s != "" {
		return s
	}

	// Invalid parameters, which is only possible on hand-crafted values.
	return mt.Essence()
}

// Equal reports whether mt and other represent the same media type.
//
// Type, subtype and parameter names compare case-insensitively,
// parameter values case-sensitively.
func (mt MediaType) Equal(other MediaType) bool {
	if !strings.EqualFold(mt.Type, other.Type) || !strings.EqualFold(mt.Subtype, other.Subtype) {
		return false
	}

	return maps.Equal(lowerKeys(mt.Params), lowerKeys(other.Params))
}

func lowerKeys(params map[string]string) map[string]string {
	lowered := make(map[string]string, len(params))
	for name, value := range params {
		lowered[strings.ToLower(name)] = value
	}

	return lowered
}

// Serialize returns the canonical string form of the media type. It never fails.
func Serialize(mt MediaType) string {
	return mt.String()
}

// Deserialize parses the media type, reporting a parse failure
// as a *serde.ValidationError.
func Deserialize(s string) (MediaType, error) {
	mt, err := Parse(s)
	if err != nil {
		return MediaType{}, serde.Invalid(typeName, s, "invalid MIME type %q for %s, %v", s, typeName, err).Wrap(err)
	}

	return mt, nil
}

func serializeValue(mt MediaType) wire.Value {
	return wire.String(Serialize(mt))
}

func deserializeValue(value wire.Value) (MediaType, error) {
	s, err := value.AsString()
	if err != nil {
		return MediaType{}, serde.Invalid(typeName, value,
			"invalid type %s, expected a valid MIME type for %s", value, typeName).Wrap(err)
	}

	return Deserialize(s)
}

// Serde returns the MediaType shim as a serde.Serde to and from wire.Value,
// to be chained with a wire backend.
func Serde() serde.Fused[MediaType, wire.Value] {
	return serde.Fuse[MediaType, wire.Value](
		serde.AsInfallibleSerializerFunc(serializeValue),
		serde.AsDeserializerFunc(deserializeValue),
	)
}
