package gosave

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way. Every step returns
// a new PathRef; the receiver is never modified.
type PathRef struct {
	parts []string
}

// Root returns the empty path.
func Root() PathRef { return PathRef{} }

// Field appends a struct field or map side segment.
func (p PathRef) Field(name string) PathRef {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return PathRef{parts: append(append([]string{}, p.parts...), esc)}
}

// Index appends a positional segment.
func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path; the root is "/".
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p PathRef) String() string { return p.Pointer() }

