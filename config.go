package gosave

import (
	"go.uber.org/zap"
)

// Config is the fluent configuration of a Serializer. It is a value: every
// setter returns a modified copy, and the serializer copies it again into
// every child, so configuration never changes during a capture.
type Config struct {
	humanReadable bool
	checkProtocol bool
	logger        *zap.Logger
}

// NewConfig returns the default configuration: human readable, protocol
// checks on, no logging.
func NewConfig() Config {
	return Config{humanReadable: true, checkProtocol: true, logger: zap.NewNop()}
}

// HumanReadable sets the hint returned by Serializer.IsHumanReadable.
func (c Config) HumanReadable(v bool) Config {
	c.humanReadable = v
	return c
}

// CheckProtocolErrors toggles verification of declared lengths and field
// name uniqueness.
func (c Config) CheckProtocolErrors(v bool) Config {
	c.checkProtocol = v
	return c
}

// Logger sets the logger that receives a Debug entry for every protocol
// error. nil restores the no-op logger.
func (c Config) Logger(l *zap.Logger) Config {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
	return c
}

// IsHumanReadable reports the configured hint.
func (c Config) IsHumanReadable() bool { return c.humanReadable }

// ChecksProtocolErrors reports whether protocol checks are enabled.
func (c Config) ChecksProtocolErrors() bool { return c.checkProtocol }

// Serializer builds a short-circuiting serializer.
func (c Config) Serializer() *Serializer[Infallible] {
	return Build[Infallible](c, ShortCircuit{})
}

// PersistingSerializer builds a serializer that records failures in the tree.
func (c Config) PersistingSerializer() *Serializer[*Error] {
	return Build[*Error](c, Persist{})
}

// Build builds a serializer with an explicit discipline.
func Build[E any](c Config, d Discipline[E]) *Serializer[E] {
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return &Serializer[E]{cfg: c, discipline: d}
}
