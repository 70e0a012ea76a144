package serde

import (
	"errors"

	"github.com/get-eventually/go-serde-shims/logger"
)

var _ Serde[any, any] = Logged[any, any]{}

// Logged is a Serde decorator that reports failures to a logger.Logger.
//
// Validation failures are expected on untrusted input and are logged at
// debug level, every other failure is logged as an error.
//
// Use Log to create a new instance of this type.
type Logged[Src any, Dst any] struct {
	name   string
	serde  Serde[Src, Dst]
	logger logger.Logger
}

// Log wraps the given Serde into a Logged decorator.
// A nil logger.Logger disables logging.
func Log[Src, Dst any](name string, s Serde[Src, Dst], l logger.Logger) Logged[Src, Dst] {
	return Logged[Src, Dst]{
		name:   name,
		serde:  s,
		logger: l,
	}
}

func (l Logged[Src, Dst]) report(msg string, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		logger.Debug(l.logger, msg,
			logger.With("serde", l.name),
			logger.With("type", verr.Type),
			logger.With("value", verr.Value),
			logger.Err(err),
		)

		return
	}

	logger.Error(l.logger, msg,
		logger.With("serde", l.name),
		logger.Err(err),
	)
}

// Serialize implements the serde.Serializer interface.
func (l Logged[Src, Dst]) Serialize(src Src) (Dst, error) {
	dst, err := l.serde.Serialize(src)
	if err != nil {
		l.report("serde.Logged: serialization failed", err)
	}

	return dst, err
}

// Deserialize implements the serde.Deserializer interface.
func (l Logged[Src, Dst]) Deserialize(dst Dst) (Src, error) {
	src, err := l.serde.Deserialize(dst)
	if err != nil {
		l.report("serde.Logged: deserialization failed", err)
	}

	return src, err
}
