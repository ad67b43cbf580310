package gosave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/gosave"
)

type (
	I = gosave.Infallible
	P = *gosave.Error
)

func assertNode[E any](t *testing.T, want, got gosave.Node[E]) bool {
	t.Helper()
	return assert.Truef(t, gosave.Equal(want, got), "want %#v\n got %#v", want, got)
}

func messages(iss gosave.Issues) []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Path + " " + it.Message
	}
	return out
}
