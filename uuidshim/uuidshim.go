// Package uuidshim serializes github.com/google/uuid values as their
// canonical, hyphenated string form.
package uuidshim

import (
	"github.com/google/uuid"

	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

const typeName = "uuid.UUID"

// Serialize returns the canonical form of the UUID,
// e.g. "f47ac10b-58cc-0372-8567-0e02b2c3d479". It never fails.
func Serialize(id uuid.UUID) string {
	return id.String()
}

// Deserialize parses a UUID in any of the forms accepted by uuid.Parse.
//
// A *serde.ValidationError wrapping the parser error is returned on failure.
func Deserialize(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, serde.Invalid(typeName, s,
			"invalid string %q for %s", s, typeName).Wrap(err)
	}

	return id, nil
}

func serializeValue(id uuid.UUID) wire.Value {
	return wire.String(Serialize(id))
}

func deserializeValue(value wire.Value) (uuid.UUID, error) {
	s, err := value.AsString()
	if err != nil {
		return uuid.Nil, serde.Invalid(typeName, value,
			"invalid type %s, expected %s as string", value, typeName).Wrap(err)
	}

	return Deserialize(s)
}

// Serde returns the UUID shim as a serde.Serde to and from wire.Value.
func Serde() serde.Fused[uuid.UUID, wire.Value] {
	return serde.Fuse[uuid.UUID, wire.Value](
		serde.AsInfallibleSerializerFunc(serializeValue),
		serde.AsDeserializerFunc(deserializeValue),
	)
}
