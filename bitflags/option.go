package bitflags

type config struct {
	name string
}

// Option specifies Set configuration options.
type Option interface {
	apply(*config)
}

type nameOption string

func (o nameOption) apply(c *config) {
	c.name = string(o)
}

// WithName specifies the flag set name reported in validation errors.
// By default, the Go type name is used.
func WithName(name string) Option {
	return nameOption(name)
}

func newConfig(defaultName string, options ...Option) config {
	c := config{name: defaultName}

	for _, opt := range options {
		opt.apply(&c)
	}

	return c
}
