package gosave

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/gosave/ser"
)

// Replaying a node drives s with exactly the calls that produced it. Declared
// lengths are the recorded element counts. An ErrorNode fails with its
// stored error.

func (n Bool[E]) Serialize(s ser.Serializer) error   { return s.SerializeBool(bool(n)) }
func (n I8[E]) Serialize(s ser.Serializer) error     { return s.SerializeI8(int8(n)) }
func (n I16[E]) Serialize(s ser.Serializer) error    { return s.SerializeI16(int16(n)) }
func (n I32[E]) Serialize(s ser.Serializer) error    { return s.SerializeI32(int32(n)) }
func (n I64[E]) Serialize(s ser.Serializer) error    { return s.SerializeI64(int64(n)) }
func (n I128[E]) Serialize(s ser.Serializer) error   { return s.SerializeI128(ser.Int128(n)) }
func (n U8[E]) Serialize(s ser.Serializer) error     { return s.SerializeU8(uint8(n)) }
func (n U16[E]) Serialize(s ser.Serializer) error    { return s.SerializeU16(uint16(n)) }
func (n U32[E]) Serialize(s ser.Serializer) error    { return s.SerializeU32(uint32(n)) }
func (n U64[E]) Serialize(s ser.Serializer) error    { return s.SerializeU64(uint64(n)) }
func (n U128[E]) Serialize(s ser.Serializer) error   { return s.SerializeU128(ser.Uint128(n)) }
func (n F32[E]) Serialize(s ser.Serializer) error    { return s.SerializeF32(float32(n)) }
func (n F64[E]) Serialize(s ser.Serializer) error    { return s.SerializeF64(float64(n)) }
func (n Char[E]) Serialize(s ser.Serializer) error   { return s.SerializeChar(rune(n)) }
func (n String[E]) Serialize(s ser.Serializer) error { return s.SerializeStr(string(n)) }
func (n Bytes[E]) Serialize(s ser.Serializer) error  { return s.SerializeBytes([]byte(n)) }
func (Unit[E]) Serialize(s ser.Serializer) error     { return s.SerializeUnit() }

func (n Option[E]) Serialize(s ser.Serializer) error {
	if n.Value == nil {
		return s.SerializeNone()
	}
	return s.SerializeSome(n.Value)
}

func (n UnitStruct[E]) Serialize(s ser.Serializer) error { return s.SerializeUnitStruct(n.Name) }

func (n UnitVariant[E]) Serialize(s ser.Serializer) error {
	return s.SerializeUnitVariant(n.Variant.Name, n.Variant.Index, n.Variant.Variant)
}

func (n NewtypeStruct[E]) Serialize(s ser.Serializer) error {
	return s.SerializeNewtypeStruct(n.Name, n.Value)
}

func (n NewtypeVariant[E]) Serialize(s ser.Serializer) error {
	return s.SerializeNewtypeVariant(n.Variant.Name, n.Variant.Index, n.Variant.Variant, n.Value)
}

func (n Seq[E]) Serialize(s ser.Serializer) error {
	seq, err := s.SerializeSeq(len(n))
	if err != nil {
		return err
	}
	for _, it := range n {
		if err := seq.SerializeElement(it); err != nil {
			return err
		}
	}
	return seq.End()
}

func (n Map[E]) Serialize(s ser.Serializer) error {
	m, err := s.SerializeMap(len(n))
	if err != nil {
		return err
	}
	for _, p := range n {
		if err := m.SerializeEntry(p.Key, p.Value); err != nil {
			return err
		}
	}
	return m.End()
}

func (n Tuple[E]) Serialize(s ser.Serializer) error {
	tup, err := s.SerializeTuple(len(n))
	if err != nil {
		return err
	}
	for _, it := range n {
		if err := tup.SerializeElement(it); err != nil {
			return err
		}
	}
	return tup.End()
}

func (n TupleStruct[E]) Serialize(s ser.Serializer) error {
	tup, err := s.SerializeTupleStruct(n.Name, len(n.Values))
	if err != nil {
		return err
	}
	for _, it := range n.Values {
		if err := tup.SerializeField(it); err != nil {
			return err
		}
	}
	return tup.End()
}

func (n TupleVariant[E]) Serialize(s ser.Serializer) error {
	v := n.Variant
	tup, err := s.SerializeTupleVariant(v.Name, v.Index, v.Variant, len(n.Values))
	if err != nil {
		return err
	}
	for _, it := range n.Values {
		if err := tup.SerializeField(it); err != nil {
			return err
		}
	}
	return tup.End()
}

// fieldSink is the common shape of ser.SerializeStruct and
// ser.SerializeStructVariant.
type fieldSink interface {
	SerializeField(name string, v ser.Serializable) error
	SkipField(name string) error
	End() error
}

func replayFields[E any](sink fieldSink, fs []Field[E]) error {
	for _, f := range fs {
		var err error
		if f.Value == nil {
			err = sink.SkipField(f.Name)
		} else {
			err = sink.SerializeField(f.Name, f.Value)
		}
		if err != nil {
			return err
		}
	}
	return sink.End()
}

func (n Struct[E]) Serialize(s ser.Serializer) error {
	st, err := s.SerializeStruct(n.Name, len(n.Fields))
	if err != nil {
		return err
	}
	return replayFields(st, n.Fields)
}

func (n StructVariant[E]) Serialize(s ser.Serializer) error {
	v := n.Variant
	st, err := s.SerializeStructVariant(v.Name, v.Index, v.Variant, len(n.Fields))
	if err != nil {
		return err
	}
	return replayFields(st, n.Fields)
}

func (n ErrorNode[E]) Serialize(ser.Serializer) error {
	if err, ok := any(n.Err).(error); ok {
		return err
	}
	return errors.Newf("%v", n.Err)
}
