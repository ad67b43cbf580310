package gosave

import (
	"github.com/reoring/gosave/ser"
)

// Capture records v with the default configuration. The first failure
// anywhere in v (depth-first, left to right) aborts the capture and is
// returned as an *Error.
func Capture(v ser.Serializable) (Node[Infallible], error) {
	return CaptureWith(New(), v)
}

// CaptureWithErrors records v with the default configuration, persisting
// failures as ErrorNode values in place. It always returns a tree; when v
// itself fails the root is an ErrorNode.
func CaptureWithErrors(v ser.Serializable) Node[*Error] {
	n, _ := CaptureWith(NewConfig().PersistingSerializer(), v)
	return n
}

// CaptureWith records v with the configuration and discipline of s. s is
// used as a template: the value is serialized into a fresh instance, so s
// can be reused.
func CaptureWith[E any](s *Serializer[E], v ser.Serializable) (Node[E], error) {
	return s.capture(v)
}

// CaptureValue converts a plain Go value, see From. Values implementing
// ser.Serializable are captured through the serializer.
func CaptureValue(v any) (Node[Infallible], error) {
	return From[Infallible](v)
}

// captureAs records v into a tree with payload E. The first failure aborts
// the capture, so the result never holds an ErrorNode.
func captureAs[E any](c Config, v ser.Serializable) (Node[E], error) {
	return Build[E](c, propagate[E]{}).capture(v)
}

// retype replays a tree into payload E. Protocol checks are off: the tree
// already is what it is.
func retype[E any](n Node[Infallible]) (Node[E], error) {
	return captureAs[E](NewConfig().CheckProtocolErrors(false), n)
}
