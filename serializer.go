package gosave

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reoring/gosave/ser"
)

// Serializer implements ser.Serializer by building a Node instead of bytes.
//
// An instance receives one value. Every child value (option payload, newtype
// payload, element, key, field) is serialized with a fresh instance sharing
// the same configuration and discipline.
type Serializer[E any] struct {
	cfg        Config
	discipline Discipline[E]

	out  Node[E]
	done bool
}

var (
	_ ser.Serializer = (*Serializer[Infallible])(nil)
	_ ser.Serializer = (*Serializer[*Error])(nil)
)

// New returns a short-circuiting serializer with the default configuration.
func New() *Serializer[Infallible] { return NewConfig().Serializer() }

// Config returns the configuration the serializer was built with.
func (s *Serializer[E]) Config() Config { return s.cfg }

// Result returns what the serializer captured, after the discipline is
// applied. It fails when nothing was serialized.
func (s *Serializer[E]) Result() (Node[E], error) {
	return s.discipline.Handle(s.result(nil))
}

func (s *Serializer[E]) fresh() *Serializer[E] {
	return &Serializer[E]{cfg: s.cfg, discipline: s.discipline}
}

// result turns the outcome of v.Serialize(s) into a node or an *Error.
func (s *Serializer[E]) result(err error) (Node[E], error) {
	if err != nil {
		return nil, asError(err)
	}
	if !s.done {
		return nil, s.protocolError("protocol error: no value was serialized", zap.String("kind", "value"))
	}
	return s.out, nil
}

// capture serializes v with a fresh serializer and hands the outcome to the
// discipline.
func (s *Serializer[E]) capture(v ser.Serializable) (Node[E], error) {
	if v == nil {
		return s.discipline.Handle(nil, s.protocolError("protocol error: nil value", zap.String("kind", "value")))
	}
	c := s.fresh()
	return s.discipline.Handle(c.result(v.Serialize(c)))
}

func (s *Serializer[E]) emit(n Node[E]) error {
	if s.done {
		if s.cfg.checkProtocol {
			return s.protocolError("protocol error: serializer already produced a value",
				zap.Stringer("first", s.out.Kind()), zap.Stringer("second", n.Kind()))
		}
		return nil
	}
	s.out, s.done = n, true
	return nil
}

func (s *Serializer[E]) protocolError(msg string, fields ...zap.Field) *Error {
	s.cfg.logger.Debug(msg, fields...)
	return newProtocolError(msg)
}

// checkLength returns a handled length-mismatch node, or nil when the
// lengths agree or checks are disabled.
func (s *Serializer[E]) checkLength(what string, expected, actual int) (Node[E], error) {
	if !s.cfg.checkProtocol || expected == actual {
		return nil, nil
	}
	msg := fmt.Sprintf("protocol error: expected a %s of length %d, got %d", what, expected, actual)
	return s.discipline.Handle(nil, s.protocolError(msg,
		zap.String("kind", what), zap.Int("expected", expected), zap.Int("got", actual)))
}

func (s *Serializer[E]) IsHumanReadable() bool { return s.cfg.humanReadable }

// ---- Scalars ----

func (s *Serializer[E]) SerializeBool(v bool) error        { return s.emit(Bool[E](v)) }
func (s *Serializer[E]) SerializeI8(v int8) error          { return s.emit(I8[E](v)) }
func (s *Serializer[E]) SerializeI16(v int16) error        { return s.emit(I16[E](v)) }
func (s *Serializer[E]) SerializeI32(v int32) error        { return s.emit(I32[E](v)) }
func (s *Serializer[E]) SerializeI64(v int64) error        { return s.emit(I64[E](v)) }
func (s *Serializer[E]) SerializeI128(v ser.Int128) error  { return s.emit(I128[E](v)) }
func (s *Serializer[E]) SerializeU8(v uint8) error         { return s.emit(U8[E](v)) }
func (s *Serializer[E]) SerializeU16(v uint16) error       { return s.emit(U16[E](v)) }
func (s *Serializer[E]) SerializeU32(v uint32) error       { return s.emit(U32[E](v)) }
func (s *Serializer[E]) SerializeU64(v uint64) error       { return s.emit(U64[E](v)) }
func (s *Serializer[E]) SerializeU128(v ser.Uint128) error { return s.emit(U128[E](v)) }
func (s *Serializer[E]) SerializeF32(v float32) error      { return s.emit(F32[E](v)) }
func (s *Serializer[E]) SerializeF64(v float64) error      { return s.emit(F64[E](v)) }
func (s *Serializer[E]) SerializeChar(v rune) error        { return s.emit(Char[E](v)) }
func (s *Serializer[E]) SerializeStr(v string) error       { return s.emit(String[E](v)) }
func (s *Serializer[E]) SerializeBytes(v []byte) error     { return s.emit(ByteBuf[E](v)) }

func (s *Serializer[E]) CollectStr(v fmt.Stringer) error {
	if v == nil {
		return s.protocolError("protocol error: nil value", zap.String("kind", "string"))
	}
	return s.emit(String[E](v.String()))
}

// ---- Options, units, newtypes ----

func (s *Serializer[E]) SerializeNone() error { return s.emit(Option[E]{}) }

func (s *Serializer[E]) SerializeSome(v ser.Serializable) error {
	n, err := s.capture(v)
	if err != nil {
		return err
	}
	return s.emit(Option[E]{Value: n})
}

func (s *Serializer[E]) SerializeUnit() error { return s.emit(Unit[E]{}) }

func (s *Serializer[E]) SerializeUnitStruct(name string) error {
	return s.emit(UnitStruct[E]{Name: name})
}

func (s *Serializer[E]) SerializeUnitVariant(name string, index uint32, variant string) error {
	return s.emit(UnitVariant[E]{Variant: VariantInfo{Name: name, Index: index, Variant: variant}})
}

func (s *Serializer[E]) SerializeNewtypeStruct(name string, v ser.Serializable) error {
	n, err := s.capture(v)
	if err != nil {
		return err
	}
	return s.emit(NewtypeStruct[E]{Name: name, Value: n})
}

func (s *Serializer[E]) SerializeNewtypeVariant(name string, index uint32, variant string, v ser.Serializable) error {
	n, err := s.capture(v)
	if err != nil {
		return err
	}
	return s.emit(NewtypeVariant[E]{
		Variant: VariantInfo{Name: name, Index: index, Variant: variant},
		Value:   n,
	})
}

// ---- Aggregate starters ----

func (s *Serializer[E]) SerializeSeq(length int) (ser.SerializeSeq, error) {
	return &SeqBuilder[E]{elements: newElements(s, "sequence", length)}, nil
}

func (s *Serializer[E]) SerializeTuple(length int) (ser.SerializeTuple, error) {
	return &TupleBuilder[E]{elements: newElements(s, "tuple", length)}, nil
}

func (s *Serializer[E]) SerializeTupleStruct(name string, length int) (ser.SerializeTupleStruct, error) {
	return &TupleStructBuilder[E]{elements: newElements(s, "tuple struct", length), name: name}, nil
}

func (s *Serializer[E]) SerializeTupleVariant(name string, index uint32, variant string, length int) (ser.SerializeTupleVariant, error) {
	return &TupleVariantBuilder[E]{
		elements: newElements(s, "tuple variant", length),
		variant:  VariantInfo{Name: name, Index: index, Variant: variant},
	}, nil
}

func (s *Serializer[E]) SerializeMap(length int) (ser.SerializeMap, error) {
	capacity := max(length, 0)
	return &MapBuilder[E]{
		s:        s,
		expected: length,
		keys:     make([]Node[E], 0, capacity),
		values:   make([]Node[E], 0, capacity),
	}, nil
}

func (s *Serializer[E]) SerializeStruct(name string, length int) (ser.SerializeStruct, error) {
	return &StructBuilder[E]{fields: newFields(s, "struct", length), name: name}, nil
}

func (s *Serializer[E]) SerializeStructVariant(name string, index uint32, variant string, length int) (ser.SerializeStructVariant, error) {
	return &StructVariantBuilder[E]{
		fields:  newFields(s, "struct", length),
		variant: VariantInfo{Name: name, Index: index, Variant: variant},
	}, nil
}
