// Package recorder provides a ser.Serializer that writes down the calls it
// receives instead of producing output. Two values that drive a serializer
// identically produce identical recordings.
package recorder

import (
	"fmt"

	"github.com/reoring/gosave/ser"
)

// Recorder records every call as one line, e.g. "i32 7", "seq 2",
// "element", "end". Children are recorded inline, in call order.
type Recorder struct {
	Calls []string

	HumanReadable bool
}

var _ ser.Serializer = (*Recorder)(nil)

// Record serializes v into a new recorder and returns its calls.
func Record(v ser.Serializable) ([]string, error) {
	r := &Recorder{HumanReadable: true}
	err := v.Serialize(r)
	return r.Calls, err
}

func (r *Recorder) add(format string, args ...any) error {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
	return nil
}

func (r *Recorder) IsHumanReadable() bool { return r.HumanReadable }

func (r *Recorder) SerializeBool(v bool) error        { return r.add("bool %t", v) }
func (r *Recorder) SerializeI8(v int8) error          { return r.add("i8 %d", v) }
func (r *Recorder) SerializeI16(v int16) error        { return r.add("i16 %d", v) }
func (r *Recorder) SerializeI32(v int32) error        { return r.add("i32 %d", v) }
func (r *Recorder) SerializeI64(v int64) error        { return r.add("i64 %d", v) }
func (r *Recorder) SerializeI128(v ser.Int128) error  { return r.add("i128 %s", v) }
func (r *Recorder) SerializeU8(v uint8) error         { return r.add("u8 %d", v) }
func (r *Recorder) SerializeU16(v uint16) error       { return r.add("u16 %d", v) }
func (r *Recorder) SerializeU32(v uint32) error       { return r.add("u32 %d", v) }
func (r *Recorder) SerializeU64(v uint64) error       { return r.add("u64 %d", v) }
func (r *Recorder) SerializeU128(v ser.Uint128) error { return r.add("u128 %s", v) }
func (r *Recorder) SerializeF32(v float32) error      { return r.add("f32 %v", v) }
func (r *Recorder) SerializeF64(v float64) error      { return r.add("f64 %v", v) }
func (r *Recorder) SerializeChar(v rune) error        { return r.add("char %q", v) }
func (r *Recorder) SerializeStr(v string) error       { return r.add("str %q", v) }
func (r *Recorder) SerializeBytes(v []byte) error     { return r.add("bytes %x", v) }
func (r *Recorder) CollectStr(v fmt.Stringer) error   { return r.add("str %q", v.String()) }

func (r *Recorder) SerializeNone() error { return r.add("none") }

func (r *Recorder) SerializeSome(v ser.Serializable) error {
	r.add("some")
	return v.Serialize(r)
}

func (r *Recorder) SerializeUnit() error { return r.add("unit") }

func (r *Recorder) SerializeUnitStruct(name string) error { return r.add("unit_struct %s", name) }

func (r *Recorder) SerializeUnitVariant(name string, index uint32, variant string) error {
	return r.add("unit_variant %s::%s#%d", name, variant, index)
}

func (r *Recorder) SerializeNewtypeStruct(name string, v ser.Serializable) error {
	r.add("newtype_struct %s", name)
	return v.Serialize(r)
}

func (r *Recorder) SerializeNewtypeVariant(name string, index uint32, variant string, v ser.Serializable) error {
	r.add("newtype_variant %s::%s#%d", name, variant, index)
	return v.Serialize(r)
}

func (r *Recorder) SerializeSeq(length int) (ser.SerializeSeq, error) {
	r.add("seq %d", length)
	return &list{r}, nil
}

func (r *Recorder) SerializeTuple(length int) (ser.SerializeTuple, error) {
	r.add("tuple %d", length)
	return &list{r}, nil
}

func (r *Recorder) SerializeTupleStruct(name string, length int) (ser.SerializeTupleStruct, error) {
	r.add("tuple_struct %s %d", name, length)
	return &list{r}, nil
}

func (r *Recorder) SerializeTupleVariant(name string, index uint32, variant string, length int) (ser.SerializeTupleVariant, error) {
	r.add("tuple_variant %s::%s#%d %d", name, variant, index, length)
	return &list{r}, nil
}

func (r *Recorder) SerializeMap(length int) (ser.SerializeMap, error) {
	r.add("map %d", length)
	return &list{r}, nil
}

func (r *Recorder) SerializeStruct(name string, length int) (ser.SerializeStruct, error) {
	r.add("struct %s %d", name, length)
	return &record{r}, nil
}

func (r *Recorder) SerializeStructVariant(name string, index uint32, variant string, length int) (ser.SerializeStructVariant, error) {
	r.add("struct_variant %s::%s#%d %d", name, variant, index, length)
	return &record{r}, nil
}

// list records unnamed children: elements, tuple fields and map entries.
type list struct{ r *Recorder }

func (l *list) child(label string, v ser.Serializable) error {
	l.r.add("%s", label)
	return v.Serialize(l.r)
}

func (l *list) SerializeElement(v ser.Serializable) error { return l.child("element", v) }
func (l *list) SerializeField(v ser.Serializable) error   { return l.child("field", v) }
func (l *list) SerializeKey(k ser.Serializable) error     { return l.child("key", k) }
func (l *list) SerializeValue(v ser.Serializable) error   { return l.child("value", v) }

func (l *list) SerializeEntry(k, v ser.Serializable) error {
	if err := l.SerializeKey(k); err != nil {
		return err
	}
	return l.SerializeValue(v)
}

func (l *list) End() error { return l.r.add("end") }

// record records named struct fields.
type record struct{ r *Recorder }

func (f *record) SerializeField(name string, v ser.Serializable) error {
	f.r.add("field %s", name)
	return v.Serialize(f.r)
}

func (f *record) SkipField(name string) error { return f.r.add("skip %s", name) }

func (f *record) End() error { return f.r.add("end") }
