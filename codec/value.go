// Package codec adapts common Go values to ser.Serializable.
package codec

import (
	"github.com/reoring/gosave"
	"github.com/reoring/gosave/ser"
)

// Value serializes an arbitrary Go value the way gosave.From converts it.
// Conversion errors surface when the value is serialized.
func Value(v any) ser.Serializable {
	return ser.Func(func(s ser.Serializer) error {
		n, err := gosave.From[gosave.Infallible](v)
		if err != nil {
			return err
		}
		return n.Serialize(s)
	})
}
