package gosave_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/gosave"
	"github.com/reoring/gosave/ser"
)

func TestCompare_Order(t *testing.T) {
	red := gosave.VariantInfo{Name: "Color", Index: 0, Variant: "Red"}
	blue := gosave.VariantInfo{Name: "Color", Index: 1, Variant: "Blue"}

	// each node sorts strictly before the next
	ordered := []gosave.Node[I]{
		nil,
		gosave.Bool[I](false),
		gosave.Bool[I](true),
		gosave.I8[I](-1),
		gosave.I64[I](math.MinInt64),
		gosave.I128[I](ser.I128(-1)),
		gosave.I128[I](ser.I128(1)),
		gosave.U8[I](0),
		gosave.U128[I](ser.U128(math.MaxUint64)),
		gosave.U128[I](ser.Uint128{High: 1}),
		gosave.F64[I](math.NaN()),
		gosave.F64[I](math.Inf(-1)),
		gosave.F64[I](0),
		gosave.Str[I]("a"),
		gosave.Str[I]("b"),
		gosave.Bytes[I]{0},
		gosave.None[I](),
		gosave.Some[I](gosave.U8[I](0)),
		gosave.UnitVariant[I]{Variant: red},
		gosave.UnitVariant[I]{Variant: blue},
		gosave.Seq[I]{},
		gosave.Seq[I]{gosave.U8[I](0)},
		gosave.Seq[I]{gosave.U8[I](0), gosave.U8[I](0)},
		gosave.Seq[I]{gosave.U8[I](1)},
		gosave.Struct[I]{Name: "S", Fields: []gosave.Field[I]{gosave.Skip[I]("a")}},
		gosave.Struct[I]{Name: "S", Fields: []gosave.Field[I]{gosave.Present[I]("a", gosave.Unit[I]{})}},
	}
	for i := 1; i < len(ordered); i++ {
		a, b := ordered[i-1], ordered[i]
		assert.Equal(t, -1, gosave.Compare(a, b), "%#v < %#v", a, b)
		assert.Equal(t, 1, gosave.Compare(b, a), "%#v > %#v", b, a)
	}

	shuffled := slices.Clone(ordered)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, gosave.Compare[I])
	for i := range ordered {
		assert.True(t, gosave.Equal(ordered[i], shuffled[i]))
	}
}

func TestCompare_Equal(t *testing.T) {
	assert.True(t, gosave.Equal[I](gosave.F64[I](math.NaN()), gosave.F64[I](math.NaN())))
	assert.True(t, gosave.Equal[I](gosave.Seq[I](nil), gosave.Seq[I]{}))
	assert.False(t, gosave.Equal[I](gosave.Seq[I]{}, gosave.Tuple[I]{}))
	assert.False(t, gosave.Equal[I](gosave.Some[I](nil), gosave.Some[I](gosave.Unit[I]{})))

	a := gosave.ErrorNode[P]{Err: gosave.NewError("x")}
	b := gosave.ErrorNode[P]{Err: gosave.NewError("x")}
	c := gosave.ErrorNode[P]{Err: gosave.NewError("y")}
	assert.True(t, gosave.Equal[P](a, b))
	assert.Equal(t, -1, gosave.Compare[P](a, c))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "tuple struct", gosave.KindTupleStruct.String())
	assert.Equal(t, "sequence", gosave.Seq[I]{}.Kind().String())
	assert.Equal(t, "unknown", gosave.Kind(99).String())
}

func TestVariantInfo(t *testing.T) {
	v := gosave.VariantInfo{Name: "Shape", Index: 3, Variant: "Circle"}
	assert.Equal(t, 0, v.Compare(v))
	assert.Equal(t, -1, v.Compare(gosave.VariantInfo{Name: "Shape", Index: 4, Variant: "Circle"}))
}
