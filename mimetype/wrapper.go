package mimetype

import (
	"fmt"

	"github.com/get-eventually/go-serde-shims/wire"
)

// Wrapper holds a MediaType and implements the serialization interfaces
// on top of it, while remaining transparent: all MediaType fields and
// methods are promoted.
type Wrapper struct {
	MediaType
}

// Wrap converts a MediaType into a Wrapper.
func Wrap(mt MediaType) Wrapper {
	return Wrapper{MediaType: mt}
}

// ParseWrapper parses a media type into a Wrapper.
func ParseWrapper(s string) (Wrapper, error) {
	mt, err := Parse(s)
	if err != nil {
		return Wrapper{}, err
	}

	return Wrap(mt), nil
}

// Unwrap returns the wrapped MediaType.
func (w Wrapper) Unwrap() MediaType {
	return w.MediaType
}

// EqualString reports whether the wrapped media type is the same
// as the one represented by s. An unparseable s is never equal.
func (w Wrapper) EqualString(s string) bool {
	mt, err := Parse(s)
	if err != nil {
		return false
	}

	return w.Equal(mt)
}

// GoString implements fmt.GoStringer, used by the %#v verb.
func (w Wrapper) GoString() string {
	return fmt.Sprintf("mimetype.Wrapper(%q)", w.String())
}

// MarshalJSON implements json.Marshaler.
func (w Wrapper) MarshalJSON() ([]byte, error) {
	return wire.MarshalJSON(Serde(), w.MediaType)
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Wrapper) UnmarshalJSON(data []byte) error {
	return wire.UnmarshalJSON(Serde(), data, &w.MediaType)
}

// MarshalText implements encoding.TextMarshaler.
func (w Wrapper) MarshalText() ([]byte, error) {
	return []byte(Serialize(w.MediaType)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Wrapper) UnmarshalText(text []byte) error {
	mt, err := Deserialize(string(text))
	if err != nil {
		return err
	}

	w.MediaType = mt

	return nil
}
