// Package datetime provides serialization support for naive date-times:
// date-times with no associated timezone, represented as a time.Time whose
// wall clock is read in UTC.
//
// The millisecond shim serializes a naive date-time as the number of
// milliseconds since the Unix epoch. This is a lossy mapping:
//
//   - dates before the epoch are clamped to the epoch itself;
//   - only millisecond precision survives a round trip.
//
// Deserialized date-times are always in UTC, and limited to the range of
// google.protobuf.Timestamp, years 1 through 9999. Timestamps past
// 9999-12-31T23:59:59.999 are rejected even though time.Time could hold
// them, so that every accepted value also maps to ProtoSerde and to
// timestamppb.
package datetime

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/get-eventually/go-serde-shims/serde"
	"github.com/get-eventually/go-serde-shims/wire"
)

const typeName = "datetime.Naive"

// Naive drops the location of t, keeping its wall clock reading, in UTC.
func Naive(t time.Time) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.UTC,
	)
}

// SerializeAsMillis returns the Unix timestamp in milliseconds of the naive
// date-time t. Dates before the epoch are serialized as 0.
func SerializeAsMillis(t time.Time) uint64 {
	return uint64(max(Naive(t).UnixMilli(), 0))
}

// DeserializeFromMillis returns the naive date-time at the given Unix
// timestamp in milliseconds.
//
// Timestamps past 9999-12-31T23:59:59.999 are out of the representable
// range and fail with a *serde.ValidationError.
func DeserializeFromMillis(millis uint64) (time.Time, error) {
	secs := millis / 1000
	nsecs := (millis % 1000) * uint64(time.Millisecond)

	t := time.Unix(int64(secs), int64(nsecs)).UTC()

	if err := timestamppb.New(t).CheckValid(); err != nil {
		return time.Time{}, serde.Invalid(typeName, millis,
			"invalid or out-of-range datetime %d for %s", millis, typeName).Wrap(err)
	}

	return t, nil
}

func serializeValue(t time.Time) wire.Value {
	return wire.Uint64(SerializeAsMillis(t))
}

func deserializeValue(value wire.Value) (time.Time, error) {
	millis, err := value.AsUint64()
	if err != nil {
		return time.Time{}, serde.Invalid(typeName, value,
			"invalid value %s, expected unix timestamp in milliseconds for %s", value, typeName).Wrap(err)
	}

	return DeserializeFromMillis(millis)
}

// MillisSerde returns the millisecond shim as a serde.Serde to and from
// wire.Value, to be chained with a wire backend.
func MillisSerde() serde.Fused[time.Time, wire.Value] {
	return serde.Fuse[time.Time, wire.Value](
		serde.AsInfallibleSerializerFunc(serializeValue),
		serde.AsDeserializerFunc(deserializeValue),
	)
}

// UnixMillis is a naive date-time serialized as a Unix timestamp
// in milliseconds, to be used directly as a field type.
type UnixMillis struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (u UnixMillis) MarshalJSON() ([]byte, error) {
	return wire.MarshalJSON(MillisSerde(), u.Time)
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UnixMillis) UnmarshalJSON(data []byte) error {
	return wire.UnmarshalJSON(MillisSerde(), data, &u.Time)
}
