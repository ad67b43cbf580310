package gosave

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/reoring/gosave/i18n"
)

// Issue codes.
const (
	CodeProtocolError = "protocol_error" // The value broke the ser contract.
	CodeProducerError = "producer_error" // The value failed on its own.
)

// ErrProtocol matches, via errors.Is, every error raised because a value
// broke the ser contract.
var ErrProtocol = errors.New("protocol error")

// Error is a failure recorded while capturing. It is either raised by the
// value being captured (producer error) or synthesized by the serializer when
// the value broke the contract (protocol error).
type Error struct {
	msg      string
	protocol bool
	cause    error
}

// NewError returns a producer error with the given message.
func NewError(msg string) *Error { return &Error{msg: msg} }

func newProtocolError(msg string) *Error { return &Error{msg: msg, protocol: true} }

// asError converts any failure into an *Error. An *Error is returned as-is so
// that nested captures keep their original classification.
func asError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{msg: err.Error(), protocol: errors.Is(err, ErrProtocol), cause: err}
}

func (e *Error) Error() string { return e.msg }

// Message returns the error text.
func (e *Error) Message() string { return e.msg }

// IsProtocol reports whether the error is a contract violation detected by
// the serializer rather than a failure of the value itself.
func (e *Error) IsProtocol() bool { return e.protocol }

// Unwrap returns the producer's original error, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is makes errors.Is(err, ErrProtocol) hold for protocol errors.
func (e *Error) Is(target error) bool { return e.protocol && target == ErrProtocol }

// Infallible is the ErrorNode payload of trees captured with the
// short-circuit discipline. Go has no uninhabited types, so the guarantee is
// an invariant of this package: no Infallible value is ever constructed and
// ErrorNode[Infallible] never appears in a tree. A type switch over such a
// tree may omit the ErrorNode case.
type Infallible struct {
	_ [0]func()
}

func (Infallible) Error() string { panic("gosave: Infallible value constructed") }

// Issue locates one persisted error in a tree.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // CodeProtocolError or CodeProducerError.
	Message string
	Cause   error // The persisted error itself.
}

// Issues is a collection of persisted errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. protocol error at /items/2: expected a tuple of length 2, got 1
		fmt.Fprintf(b, "%s at %s: %s", i18n.T(it.Code, nil), it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Protocol returns the protocol issues only.
func (iss Issues) Protocol() Issues {
	var out Issues
	for _, it := range iss {
		if it.Code == CodeProtocolError {
			out = append(out, it)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
