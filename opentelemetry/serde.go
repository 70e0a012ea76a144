// Package opentelemetry provides OpenTelemetry instrumentation, in the form
// of metrics and traces, around the serde.Serde types of this module.
package opentelemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/get-eventually/go-serde-shims/serde"
)

// Attribute keys used by the InstrumentedSerde instrumentation.
const (
	SerdeNameKey       attribute.Key = "serde.name"
	SerdeOperationKey  attribute.Key = "serde.operation"
	ErrorAttribute     attribute.Key = "error"
	ValidationErrorKey attribute.Key = "serde.validation_error"
)

const (
	operationSerialize   = "serialize"
	operationDeserialize = "deserialize"
)

var _ serde.Serde[any, any] = &InstrumentedSerde[any, any]{}

// InstrumentedSerde is a wrapper type over a serde.Serde instance to provide
// instrumentation, in the form of metrics and traces using OpenTelemetry.
//
// Results of the wrapped Serde are returned unchanged.
//
// Use NewInstrumentedSerde for constructing a new instance of this type.
type InstrumentedSerde[Src any, Dst any] struct {
	serde serde.Serde[Src, Dst]
	name  string

	tracer              trace.Tracer
	serializeDuration   metric.Float64Histogram
	deserializeDuration metric.Float64Histogram
	validationFailures  metric.Int64Counter
}

func (is *InstrumentedSerde[Src, Dst]) registerMetrics(meter metric.Meter) error {
	var err error

	if is.serializeDuration, err = meter.Float64Histogram(
		"go_serde_shims.serialize.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of serde.Serializer.Serialize operations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	if is.deserializeDuration, err = meter.Float64Histogram(
		"go_serde_shims.deserialize.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of serde.Deserializer.Deserialize operations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	if is.validationFailures, err = meter.Int64Counter(
		"go_serde_shims.validation.failures",
		metric.WithDescription("Number of values rejected by a shim during deserialization."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	return nil
}

// NewInstrumentedSerde returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around a serde.Serde.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedSerde[Src, Dst any](
	s serde.Serde[Src, Dst],
	options ...Option,
) (*InstrumentedSerde[Src, Dst], error) {
	cfg := newConfig(serde.TypeName[Src](), options...)

	is := &InstrumentedSerde[Src, Dst]{
		serde:  s,
		name:   cfg.SerdeName,
		tracer: cfg.tracer(),
	}

	if err := is.registerMetrics(cfg.meter()); err != nil {
		return nil, err
	}

	return is, nil
}

func (is *InstrumentedSerde[Src, Dst]) observe(
	ctx context.Context,
	operation string,
	histogram metric.Float64Histogram,
) (context.Context, func(err error)) {
	ctx, span := is.tracer.Start(ctx, "serde.Serde."+operation, trace.WithAttributes(
		SerdeNameKey.String(is.name),
		SerdeOperationKey.String(operation),
	))

	start := time.Now()

	return ctx, func(err error) {
		duration := float64(time.Since(start)) / float64(time.Millisecond)
		isValidationError := serde.IsValidationError(err)

		attributes := metric.WithAttributes(
			SerdeNameKey.String(is.name),
			ErrorAttribute.Bool(err != nil),
			ValidationErrorKey.Bool(isValidationError),
		)

		histogram.Record(ctx, duration, attributes)

		if isValidationError {
			is.validationFailures.Add(ctx, 1, metric.WithAttributes(SerdeNameKey.String(is.name)))
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		span.End()
	}
}

// SerializeContext calls the wrapped serde.Serializer.Serialize method
// and records metrics and traces around it.
func (is *InstrumentedSerde[Src, Dst]) SerializeContext(ctx context.Context, src Src) (Dst, error) {
	_, done := is.observe(ctx, operationSerialize, is.serializeDuration)

	dst, err := is.serde.Serialize(src)
	done(err)

	return dst, err
}

// DeserializeContext calls the wrapped serde.Deserializer.Deserialize method
// and records metrics and traces around it.
func (is *InstrumentedSerde[Src, Dst]) DeserializeContext(ctx context.Context, dst Dst) (Src, error) {
	_, done := is.observe(ctx, operationDeserialize, is.deserializeDuration)

	src, err := is.serde.Deserialize(dst)
	done(err)

	return src, err
}

// Serialize implements the serde.Serializer interface,
// using context.Background as the parent of the recorded span.
func (is *InstrumentedSerde[Src, Dst]) Serialize(src Src) (Dst, error) {
	return is.SerializeContext(context.Background(), src)
}

// Deserialize implements the serde.Deserializer interface,
// using context.Background as the parent of the recorded span.
func (is *InstrumentedSerde[Src, Dst]) Deserialize(dst Dst) (Src, error) {
	return is.DeserializeContext(context.Background(), dst)
}
