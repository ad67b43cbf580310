// Package gosave captures the complete output of a ser.Serializable into an
// in-memory tree.
//
// The tree keeps every detail the ser contract can express: primitive
// scalars, strings, byte buffers, options, unit values, named/unnamed struct
// and enum-variant shapes (with field names, variant names and variant
// indices), sequences, tuples and maps. A captured Node is itself
// Serializable, so feeding it back through any ser.Serializer reproduces the
// original call sequence.
//
// While capturing, the serializer checks that the value obeyed the contract:
// declared lengths match what was pushed and struct field names are unique.
//
// Overview
//   - Capture: short-circuit on the first failure, returning Node[Infallible].
//   - CaptureWithErrors: never fails; failures become ErrorNode values in place.
//   - NewConfig: fluent configuration (human-readable hint, protocol checks,
//     logger) that builds either kind of Serializer.
//   - From: embed plain Go values as nodes without a Serializable.
//   - Errors/Walk: find every persisted error with its JSON Pointer path.
//   - export: one-way, lossy conversion to dynamic Go values, YAML and JSON.
//
// Typical usage:
//
//	n, err := gosave.Capture(value)
//	tree := gosave.CaptureWithErrors(value)
//	for _, iss := range gosave.Errors(tree) {
//		fmt.Println(iss.Path, iss.Message)
//	}
//
// Capturing is a single synchronous depth-first traversal. Recursion depth
// equals the nesting depth of the captured value and is bounded only by the
// goroutine stack.
package gosave
