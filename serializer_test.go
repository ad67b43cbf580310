package gosave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/gosave"
	"github.com/reoring/gosave/internal/fixtures"
	"github.com/reoring/gosave/ser"
)

func TestCapture_Point(t *testing.T) {
	n, err := gosave.Capture(fixtures.Point{X: 1, Y: -2})
	require.NoError(t, err)
	assertNode[I](t, gosave.Struct[I]{Name: "Point", Fields: []gosave.Field[I]{
		gosave.Present[I]("x", gosave.I32[I](1)),
		gosave.Present[I]("y", gosave.I32[I](-2)),
	}}, n)
}

func TestCapture_Variants(t *testing.T) {
	cases := []struct {
		name string
		in   fixtures.Shape
		want gosave.Node[I]
	}{
		{"unit", fixtures.Empty{}, gosave.UnitVariant[I]{Variant: gosave.VariantInfo{Name: "Shape", Index: 0, Variant: "Empty"}}},
		{"newtype", fixtures.Named{Name: "n"}, gosave.NewtypeVariant[I]{
			Variant: gosave.VariantInfo{Name: "Shape", Index: 1, Variant: "Named"},
			Value:   gosave.Str[I]("n"),
		}},
		{"tuple", fixtures.Rect{W: 2, H: 3}, gosave.TupleVariant[I]{
			Variant: gosave.VariantInfo{Name: "Shape", Index: 2, Variant: "Rect"},
			Values:  []gosave.Node[I]{gosave.F64[I](2), gosave.F64[I](3)},
		}},
		{"struct", fixtures.Circle{Radius: 1.5}, gosave.StructVariant[I]{
			Variant: gosave.VariantInfo{Name: "Shape", Index: 3, Variant: "Circle"},
			Fields:  []gosave.Field[I]{gosave.Present[I]("radius", gosave.F64[I](1.5))},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := gosave.Capture(tc.in)
			require.NoError(t, err)
			assertNode(t, tc.want, n)
		})
	}
}

func TestCapture_SkipDiffersFromNone(t *testing.T) {
	n, err := gosave.Capture(fixtures.Profile{Name: "Bob"})
	require.NoError(t, err)
	st := n.(gosave.Struct[I])
	require.Len(t, st.Fields, 3)

	nick := st.Fields[1]
	assert.Equal(t, "nick", nick.Name)
	assert.False(t, nick.Skipped())
	assertNode[I](t, gosave.None[I](), nick.Value)

	email := st.Fields[2]
	assert.Equal(t, "email", email.Name)
	assert.True(t, email.Skipped())
}

func TestCapture_SeqLengthMismatch(t *testing.T) {
	_, err := gosave.Capture(fixtures.BadSeq{Hint: 3, Push: 2})
	require.Error(t, err)
	assert.Equal(t, "protocol error: expected a sequence of length 3, got 2", err.Error())
	assert.ErrorIs(t, err, gosave.ErrProtocol)

	var e *gosave.Error
	require.ErrorAs(t, err, &e)
	assert.True(t, e.IsProtocol())

	tree := gosave.CaptureWithErrors(fixtures.BadSeq{Hint: 3, Push: 2})
	seq := tree.(gosave.Seq[P])
	require.Len(t, seq, 3)
	assertNode[P](t, gosave.U8[P](0), seq[0])
	assertNode[P](t, gosave.U8[P](1), seq[1])
	en, ok := seq[2].(gosave.ErrorNode[P])
	require.True(t, ok)
	assert.True(t, en.Err.IsProtocol())
}

func TestCapture_SeqWithoutHintIsNotChecked(t *testing.T) {
	n, err := gosave.Capture(fixtures.BadSeq{Hint: ser.UnknownLen, Push: 2})
	require.NoError(t, err)
	assertNode[I](t, gosave.Seq[I]{gosave.U8[I](0), gosave.U8[I](1)}, n)
}

func TestCapture_DuplicateFields(t *testing.T) {
	_, err := gosave.Capture(fixtures.Dup{})
	require.EqualError(t, err, "protocol error: struct has duplicate field names: a")

	tree := gosave.CaptureWithErrors(fixtures.Dup{})
	st := tree.(gosave.Struct[P])
	require.Len(t, st.Fields, 3)
	assert.Equal(t, gosave.ErrorFieldName, st.Fields[2].Name)
	assert.Equal(t, []string{"/!error protocol error: struct has duplicate field names: a"}, messages(gosave.Errors(tree)))
}

func TestCapture_DuplicateAndLength(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		st, err := s.SerializeStruct("S", 2)
		if err != nil {
			return err
		}
		for _, name := range []string{"a", "b", "a", "a"} {
			if err := st.SerializeField(name, fixtures.U8(0)); err != nil {
				return err
			}
		}
		return st.End()
	})
	tree := gosave.CaptureWithErrors(v)
	assert.Equal(t, []string{
		"/!error protocol error: struct has duplicate field names: a, a",
		"/!error protocol error: expected a struct of length 2, got 4",
	}, messages(gosave.Errors(tree)))
}

func TestCapture_JaggedMap(t *testing.T) {
	_, err := gosave.Capture(fixtures.Jagged{Hint: 2, Keys: 2, Values: 3})
	require.EqualError(t, err, "protocol error: map has 2 keys and 3 values")

	tree := gosave.CaptureWithErrors(fixtures.Jagged{Hint: 2, Keys: 2, Values: 3})
	m := tree.(gosave.Map[P])
	require.Len(t, m, 4)
	assert.Equal(t, []string{
		"/2/key protocol error: map has 2 keys and 3 values",
		"/3/key protocol error: expected a map of length 2, got 3",
		"/3/value protocol error: expected a map of length 2, got 3",
	}, messages(gosave.Errors(tree)))
}

func TestCapture_JaggedMapWithoutHint(t *testing.T) {
	tree := gosave.CaptureWithErrors(fixtures.Jagged{Hint: ser.UnknownLen, Keys: 2, Values: 3})
	m := tree.(gosave.Map[P])
	require.Len(t, m, 3)
	assertNode[P](t, gosave.U8[P](1), m[1].Key)
	assertNode[P](t, gosave.Str[P]("v"), m[2].Value)
	en, ok := m[2].Key.(gosave.ErrorNode[P])
	require.True(t, ok)
	assert.Equal(t, "protocol error: map has 2 keys and 3 values", en.Err.Message())
	assert.True(t, en.Err.IsProtocol())
}

func TestCapture_MapDuplicateKeysKept(t *testing.T) {
	n, err := gosave.Capture(ser.Entries(
		ser.Entry{Key: fixtures.String("k"), Value: fixtures.U8(1)},
		ser.Entry{Key: fixtures.String("k"), Value: fixtures.U8(2)},
	))
	require.NoError(t, err)
	assertNode[I](t, gosave.Map[I]{
		gosave.Entry[I](gosave.Str[I]("k"), gosave.U8[I](1)),
		gosave.Entry[I](gosave.Str[I]("k"), gosave.U8[I](2)),
	}, n)
}

func TestCapture_ShortCircuitVersusPersist(t *testing.T) {
	_, err := gosave.Capture(fixtures.Order())
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, fixtures.ErrBoom)
	assert.NotErrorIs(t, err, gosave.ErrProtocol)

	tree := gosave.CaptureWithErrors(fixtures.Order())
	st := tree.(gosave.Struct[P])
	require.Len(t, st.Fields, 2)
	items := st.Fields[1].Value.(gosave.Seq[P])
	require.Len(t, items, 3)
	assertNode[P](t, gosave.Str[P]("apple"), items[0])
	assertNode[P](t, gosave.Str[P]("pear"), items[2])

	iss := gosave.Errors(tree)
	require.Len(t, iss, 1)
	assert.Equal(t, "/items/1", iss[0].Path)
	assert.Equal(t, gosave.CodeProducerError, iss[0].Code)
	assert.ErrorIs(t, iss[0].Cause, fixtures.ErrBoom)
	assert.Equal(t, "serialization error at /items/1: boom", iss.Error())
}

func TestCapture_RootFailurePersisted(t *testing.T) {
	tree := gosave.CaptureWithErrors(fixtures.Boom{})
	en, ok := tree.(gosave.ErrorNode[P])
	require.True(t, ok)
	assert.Equal(t, "boom", en.Err.Message())
	assert.False(t, en.Err.IsProtocol())
}

func TestCapture_EmissionRules(t *testing.T) {
	_, err := gosave.Capture(fixtures.Twice{})
	require.EqualError(t, err, "protocol error: serializer already produced a value")

	lax := gosave.NewConfig().CheckProtocolErrors(false).Serializer()
	n, err := gosave.CaptureWith(lax, fixtures.Twice{})
	require.NoError(t, err)
	assertNode[I](t, gosave.Bool[I](true), n)

	for _, s := range []*gosave.Serializer[I]{gosave.New(), lax} {
		_, err = gosave.CaptureWith(s, fixtures.Silent{})
		require.EqualError(t, err, "protocol error: no value was serialized")
	}

	_, err = gosave.Capture(ser.Func(func(s ser.Serializer) error { return s.SerializeSome(nil) }))
	require.EqualError(t, err, "protocol error: nil value")
}

func TestCapture_ChecksDisabled(t *testing.T) {
	lax := gosave.NewConfig().CheckProtocolErrors(false)
	n, err := gosave.CaptureWith(lax.Serializer(), fixtures.BadSeq{Hint: 3, Push: 2})
	require.NoError(t, err)
	assertNode[I](t, gosave.Seq[I]{gosave.U8[I](0), gosave.U8[I](1)}, n)

	tree, err := gosave.CaptureWith(lax.PersistingSerializer(), fixtures.Dup{})
	require.NoError(t, err)
	assert.Nil(t, gosave.Errors(tree))
	assert.Len(t, tree.(gosave.Struct[P]).Fields, 2)

	// zip mismatches are always reported
	tree, _ = gosave.CaptureWith(lax.PersistingSerializer(), fixtures.Jagged{Hint: 5, Keys: 1, Values: 0})
	assert.Equal(t, []string{"/0/value protocol error: map has 1 keys and 0 values"}, messages(gosave.Errors(tree)))
}

func TestSerializer_BuilderFinished(t *testing.T) {
	s := gosave.New()
	seq, err := s.SerializeSeq(0)
	require.NoError(t, err)
	require.NoError(t, seq.End())
	assert.ErrorIs(t, seq.SerializeElement(fixtures.U8(1)), ser.ErrBuilderFinished)
	assert.ErrorIs(t, seq.End(), ser.ErrBuilderFinished)

	n, err := s.Result()
	require.NoError(t, err)
	assertNode[I](t, gosave.Seq[I]{}, n)

	m, err := gosave.New().SerializeMap(ser.UnknownLen)
	require.NoError(t, err)
	require.NoError(t, m.End())
	assert.ErrorIs(t, m.SerializeKey(fixtures.U8(1)), ser.ErrBuilderFinished)

	st, err := gosave.New().SerializeStructVariant("E", 0, "V", 0)
	require.NoError(t, err)
	require.NoError(t, st.End())
	assert.ErrorIs(t, st.SkipField("x"), ser.ErrBuilderFinished)
}

func TestSerializer_ResultWithoutValue(t *testing.T) {
	_, err := gosave.New().Result()
	require.EqualError(t, err, "protocol error: no value was serialized")

	n, err := gosave.NewConfig().PersistingSerializer().Result()
	require.NoError(t, err)
	_, ok := n.(gosave.ErrorNode[P])
	assert.True(t, ok)
}

func TestSerializer_TemplateIsReusable(t *testing.T) {
	s := gosave.New()
	for i := 0; i < 2; i++ {
		n, err := gosave.CaptureWith(s, fixtures.I32(7))
		require.NoError(t, err)
		assertNode[I](t, gosave.I32[I](7), n)
	}
}

func TestConfig_Propagates(t *testing.T) {
	var seen []bool
	var nested ser.Serializable
	nested = ser.Func(func(s ser.Serializer) error {
		seen = append(seen, s.IsHumanReadable())
		if len(seen) < 3 {
			return s.SerializeSome(nested)
		}
		return s.SerializeUnit()
	})
	cfg := gosave.NewConfig().HumanReadable(false)
	assert.True(t, gosave.NewConfig().IsHumanReadable())
	assert.True(t, gosave.NewConfig().ChecksProtocolErrors())

	_, err := gosave.CaptureWith(cfg.Serializer(), nested)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false}, seen)
	assert.False(t, cfg.Serializer().Config().IsHumanReadable())
}

func TestConfig_LogsProtocolErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := gosave.NewConfig().Logger(zap.New(core)).PersistingSerializer()

	_, err := gosave.CaptureWith(s, fixtures.BadSeq{Hint: 3, Push: 2})
	require.NoError(t, err)

	entries := logs.FilterMessage("protocol error: expected a sequence of length 3, got 2").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "sequence", ctx["kind"])
	assert.EqualValues(t, 3, ctx["expected"])
	assert.EqualValues(t, 2, ctx["got"])
}

func TestScalars(t *testing.T) {
	cases := []struct {
		name string
		in   ser.Func
		want gosave.Node[I]
	}{
		{"bool", func(s ser.Serializer) error { return s.SerializeBool(true) }, gosave.Bool[I](true)},
		{"i8", func(s ser.Serializer) error { return s.SerializeI8(-8) }, gosave.I8[I](-8)},
		{"i16", func(s ser.Serializer) error { return s.SerializeI16(-16) }, gosave.I16[I](-16)},
		{"i64", func(s ser.Serializer) error { return s.SerializeI64(-64) }, gosave.I64[I](-64)},
		{"i128", func(s ser.Serializer) error { return s.SerializeI128(ser.I128(-1)) }, gosave.I128[I](ser.I128(-1))},
		{"u16", func(s ser.Serializer) error { return s.SerializeU16(16) }, gosave.U16[I](16)},
		{"u32", func(s ser.Serializer) error { return s.SerializeU32(32) }, gosave.U32[I](32)},
		{"u64", func(s ser.Serializer) error { return s.SerializeU64(64) }, gosave.U64[I](64)},
		{"u128", func(s ser.Serializer) error { return s.SerializeU128(ser.U128(7)) }, gosave.U128[I](ser.U128(7))},
		{"f32", func(s ser.Serializer) error { return s.SerializeF32(0.5) }, gosave.F32[I](0.5)},
		{"char", func(s ser.Serializer) error { return s.SerializeChar('x') }, gosave.Char[I]('x')},
		{"bytes", func(s ser.Serializer) error { return s.SerializeBytes([]byte{1, 2}) }, gosave.Bytes[I]{1, 2}},
		{"collect", func(s ser.Serializer) error { return s.CollectStr(ser.I128(42)) }, gosave.Str[I]("42")},
		{"unit", func(s ser.Serializer) error { return s.SerializeUnit() }, gosave.Unit[I]{}},
		{"unit struct", func(s ser.Serializer) error { return s.SerializeUnitStruct("M") }, gosave.UnitStruct[I]{Name: "M"}},
		{"newtype", func(s ser.Serializer) error { return s.SerializeNewtypeStruct("N", fixtures.U8(1)) },
			gosave.NewtypeStruct[I]{Name: "N", Value: gosave.U8[I](1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := gosave.Capture(tc.in)
			require.NoError(t, err)
			assertNode(t, tc.want, n)
		})
	}
}

func TestCapture_TupleStructLength(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		ts, err := s.SerializeTupleStruct("Pair", 2)
		if err != nil {
			return err
		}
		if err := ts.SerializeField(fixtures.U8(1)); err != nil {
			return err
		}
		return ts.End()
	})
	_, err := gosave.Capture(v)
	require.EqualError(t, err, "protocol error: expected a tuple struct of length 2, got 1")

	tree := gosave.CaptureWithErrors(v)
	assert.Equal(t, []string{"/1 protocol error: expected a tuple struct of length 2, got 1"}, messages(gosave.Errors(tree)))
}

func TestCapture_TupleLengths(t *testing.T) {
	tuple := ser.Func(func(s ser.Serializer) error {
		tup, err := s.SerializeTuple(3)
		if err != nil {
			return err
		}
		for _, v := range []ser.Serializable{fixtures.U8(1), fixtures.U8(2)} {
			if err := tup.SerializeElement(v); err != nil {
				return err
			}
		}
		return tup.End()
	})
	variant := ser.Func(func(s ser.Serializer) error {
		tv, err := s.SerializeTupleVariant("Shape", 2, "Rect", 2)
		if err != nil {
			return err
		}
		if err := tv.SerializeField(fixtures.F64(1)); err != nil {
			return err
		}
		return tv.End()
	})
	cases := []struct {
		name string
		in   ser.Serializable
		want string
		path string
	}{
		{"tuple", tuple, "protocol error: expected a tuple of length 3, got 2", "/2"},
		{"tuple variant", variant, "protocol error: expected a tuple variant of length 2, got 1", "/1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gosave.Capture(tc.in)
			require.EqualError(t, err, tc.want)
			assert.ErrorIs(t, err, gosave.ErrProtocol)

			iss := gosave.Errors(gosave.CaptureWithErrors(tc.in))
			assert.Equal(t, []string{tc.path + " " + tc.want}, messages(iss))
			assert.Equal(t, gosave.CodeProtocolError, iss[0].Code)
		})
	}
}

func TestCapture_StructVariantChecks(t *testing.T) {
	v := ser.Func(func(s ser.Serializer) error {
		sv, err := s.SerializeStructVariant("Shape", 3, "Circle", 1)
		if err != nil {
			return err
		}
		for _, name := range []string{"radius", "radius"} {
			if err := sv.SerializeField(name, fixtures.F64(1)); err != nil {
				return err
			}
		}
		return sv.End()
	})
	_, err := gosave.Capture(v)
	require.EqualError(t, err, "protocol error: struct has duplicate field names: radius")

	tree := gosave.CaptureWithErrors(v)
	sv := tree.(gosave.StructVariant[P])
	assert.Equal(t, "Circle", sv.Variant.Variant)
	require.Len(t, sv.Fields, 4)
	assert.Equal(t, []string{
		"/!error protocol error: struct has duplicate field names: radius",
		"/!error protocol error: expected a struct of length 1, got 2",
	}, messages(gosave.Errors(tree)))
}

func TestCapture_MapSlotFailuresPersisted(t *testing.T) {
	in := ser.Entries(
		ser.Entry{Key: fixtures.Boom{}, Value: fixtures.U8(1)},
		ser.Entry{Key: fixtures.String("k"), Value: fixtures.Boom{}},
	)
	_, err := gosave.Capture(in)
	assert.ErrorIs(t, err, fixtures.ErrBoom)

	tree := gosave.CaptureWithErrors(in)
	m := tree.(gosave.Map[P])
	require.Len(t, m, 2)
	assertNode[P](t, gosave.U8[P](1), m[0].Value)
	assertNode[P](t, gosave.Str[P]("k"), m[1].Key)

	iss := gosave.Errors(tree)
	assert.Equal(t, []string{"/0/key boom", "/1/value boom"}, messages(iss))
	for _, it := range iss {
		assert.Equal(t, gosave.CodeProducerError, it.Code)
		assert.ErrorIs(t, it.Cause, fixtures.ErrBoom)
	}
}

func TestSerializer_CollectStrNil(t *testing.T) {
	nilStr := ser.Func(func(s ser.Serializer) error { return s.CollectStr(nil) })
	_, err := gosave.Capture(nilStr)
	require.EqualError(t, err, "protocol error: nil value")
	assert.ErrorIs(t, err, gosave.ErrProtocol)

	tree := gosave.CaptureWithErrors(ser.Slice([]ser.Serializable{nilStr}))
	assert.Equal(t, []string{"/0 protocol error: nil value"}, messages(gosave.Errors(tree)))
}

func TestConfig_LogsMapLengthOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := gosave.NewConfig().Logger(zap.New(core)).PersistingSerializer()

	tree, err := gosave.CaptureWith(s, fixtures.Jagged{Hint: 2, Keys: 2, Values: 3})
	require.NoError(t, err)
	m := tree.(gosave.Map[P])
	require.Len(t, m, 4)
	for _, side := range []gosave.Node[P]{m[3].Key, m[3].Value} {
		en, ok := side.(gosave.ErrorNode[P])
		require.True(t, ok)
		assert.True(t, en.Err.IsProtocol())
	}
	assert.Equal(t, 1, logs.FilterMessage("protocol error: expected a map of length 2, got 3").Len())
}
