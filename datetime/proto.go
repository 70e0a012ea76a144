package datetime

import (
	"time"

	dtpb "google.golang.org/genproto/googleapis/type/datetime"

	"github.com/get-eventually/go-serde-shims/serde"
)

// ProtoSerde maps a naive date-time to a google.type.DateTime message
// with no time offset, preserving nanoseconds.
//
//nolint:gochecknoglobals // Stateless serde.
var ProtoSerde = serde.Fused[time.Time, *dtpb.DateTime]{
	Serializer:   serde.AsInfallibleSerializerFunc(protoSerializer),
	Deserializer: serde.AsDeserializerFunc(protoDeserializer),
}

func protoSerializer(t time.Time) *dtpb.DateTime {
	t = Naive(t)

	return &dtpb.DateTime{
		Year:       int32(t.Year()),
		Month:      int32(t.Month()),
		Day:        int32(t.Day()),
		Hours:      int32(t.Hour()),
		Minutes:    int32(t.Minute()),
		Seconds:    int32(t.Second()),
		Nanos:      int32(t.Nanosecond()),
		TimeOffset: nil,
	}
}

func protoDeserializer(dt *dtpb.DateTime) (time.Time, error) {
	if dt.GetTimeOffset() != nil {
		return time.Time{}, serde.Invalid(typeName, dt,
			"invalid datetime %v for %s, time offset is not supported", dt, typeName)
	}

	t := time.Date(
		int(dt.GetYear()), time.Month(dt.GetMonth()), int(dt.GetDay()),
		int(dt.GetHours()), int(dt.GetMinutes()), int(dt.GetSeconds()), int(dt.GetNanos()),
		time.UTC,
	)

	// time.Date normalizes out-of-range fields, e.g. February 30th becomes March 2nd.
	if dt.GetYear() < 1 || dt.GetYear() > 9999 ||
		t.Month() != time.Month(dt.GetMonth()) || t.Day() != int(dt.GetDay()) ||
		t.Hour() != int(dt.GetHours()) || t.Minute() != int(dt.GetMinutes()) ||
		t.Second() != int(dt.GetSeconds()) || t.Nanosecond() != int(dt.GetNanos()) {
		return time.Time{}, serde.Invalid(typeName, dt,
			"invalid or out-of-range datetime %v for %s", dt, typeName)
	}

	return t, nil
}
