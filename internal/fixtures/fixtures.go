// Package fixtures holds producer values shared by package tests: some obey
// the ser contract, others break it on purpose.
package fixtures

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/gosave/ser"
)

// ErrBoom is returned by Boom.
var ErrBoom = errors.New("boom")

type (
	Bool   bool
	I32    int32
	U8     uint8
	F64    float64
	String string
)

func (v Bool) Serialize(s ser.Serializer) error   { return s.SerializeBool(bool(v)) }
func (v I32) Serialize(s ser.Serializer) error    { return s.SerializeI32(int32(v)) }
func (v U8) Serialize(s ser.Serializer) error     { return s.SerializeU8(uint8(v)) }
func (v F64) Serialize(s ser.Serializer) error    { return s.SerializeF64(float64(v)) }
func (v String) Serialize(s ser.Serializer) error { return s.SerializeStr(string(v)) }

// Point is a plain two-field struct.
type Point struct {
	X, Y int32
}

func (p Point) Serialize(s ser.Serializer) error {
	st, err := s.SerializeStruct("Point", 2)
	if err != nil {
		return err
	}
	if err := st.SerializeField("x", I32(p.X)); err != nil {
		return err
	}
	if err := st.SerializeField("y", I32(p.Y)); err != nil {
		return err
	}
	return st.End()
}

// Shape is an enum with one variant of every shape.
type Shape interface {
	ser.Serializable
	shape()
}

type (
	Empty  struct{}
	Named  struct{ Name string }
	Rect   struct{ W, H float64 }
	Circle struct{ Radius float64 }
)

func (Empty) shape()  {}
func (Named) shape()  {}
func (Rect) shape()   {}
func (Circle) shape() {}

func (Empty) Serialize(s ser.Serializer) error {
	return s.SerializeUnitVariant("Shape", 0, "Empty")
}

func (n Named) Serialize(s ser.Serializer) error {
	return s.SerializeNewtypeVariant("Shape", 1, "Named", String(n.Name))
}

func (r Rect) Serialize(s ser.Serializer) error {
	tv, err := s.SerializeTupleVariant("Shape", 2, "Rect", 2)
	if err != nil {
		return err
	}
	if err := tv.SerializeField(F64(r.W)); err != nil {
		return err
	}
	if err := tv.SerializeField(F64(r.H)); err != nil {
		return err
	}
	return tv.End()
}

func (c Circle) Serialize(s ser.Serializer) error {
	sv, err := s.SerializeStructVariant("Shape", 3, "Circle", 1)
	if err != nil {
		return err
	}
	if err := sv.SerializeField("radius", F64(c.Radius)); err != nil {
		return err
	}
	return sv.End()
}

// Profile exercises options and skipped fields. Nick is an option; Email is
// skipped when empty.
type Profile struct {
	Name  string
	Nick  *string
	Email string
}

func (p Profile) Serialize(s ser.Serializer) error {
	st, err := s.SerializeStruct("Profile", 3)
	if err != nil {
		return err
	}
	if err := st.SerializeField("name", String(p.Name)); err != nil {
		return err
	}
	nick := ser.Func(func(s ser.Serializer) error {
		if p.Nick == nil {
			return s.SerializeNone()
		}
		return s.SerializeSome(String(*p.Nick))
	})
	if err := st.SerializeField("nick", nick); err != nil {
		return err
	}
	if p.Email == "" {
		err = st.SkipField("email")
	} else {
		err = st.SerializeField("email", String(p.Email))
	}
	if err != nil {
		return err
	}
	return st.End()
}

// Everything nests one value of most node kinds.
func Everything() ser.Serializable {
	nick := "ann"
	return ser.Func(func(s ser.Serializer) error {
		tup, err := s.SerializeTuple(9)
		if err != nil {
			return err
		}
		for _, v := range []ser.Serializable{
			Point{X: 1, Y: -2},
			Profile{Name: "Ann", Nick: &nick},
			Profile{Name: "Bob"},
			ser.Slice([]Shape{Empty{}, Named{"n"}, Rect{2, 3}, Circle{1.5}}),
			ser.Entries(
				ser.Entry{Key: String("a"), Value: U8(1)},
				ser.Entry{Key: String("a"), Value: U8(2)},
			),
			ser.Func(func(s ser.Serializer) error { return s.SerializeI128(ser.I128(-5)) }),
			ser.Func(func(s ser.Serializer) error { return s.SerializeUnitStruct("Marker") }),
			ser.Func(func(s ser.Serializer) error { return s.SerializeNewtypeStruct("Meters", F64(3.5)) }),
			ser.Func(func(s ser.Serializer) error { return s.SerializeChar('é') }),
		} {
			if err := tup.SerializeElement(v); err != nil {
				return err
			}
		}
		return tup.End()
	})
}

// BadSeq declares Hint elements and pushes Push of them.
type BadSeq struct {
	Hint, Push int
}

func (b BadSeq) Serialize(s ser.Serializer) error {
	seq, err := s.SerializeSeq(b.Hint)
	if err != nil {
		return err
	}
	for i := 0; i < b.Push; i++ {
		if err := seq.SerializeElement(U8(i)); err != nil {
			return err
		}
	}
	return seq.End()
}

// Dup writes the field "a" twice into a struct declared with length 2.
type Dup struct{}

func (Dup) Serialize(s ser.Serializer) error {
	st, err := s.SerializeStruct("Dup", 2)
	if err != nil {
		return err
	}
	if err := st.SerializeField("a", U8(1)); err != nil {
		return err
	}
	if err := st.SerializeField("a", U8(2)); err != nil {
		return err
	}
	return st.End()
}

// Jagged pushes Keys keys and Values values into a map declared with Hint
// entries.
type Jagged struct {
	Hint, Keys, Values int
}

func (j Jagged) Serialize(s ser.Serializer) error {
	m, err := s.SerializeMap(j.Hint)
	if err != nil {
		return err
	}
	for i := 0; i < j.Keys; i++ {
		if err := m.SerializeKey(U8(i)); err != nil {
			return err
		}
	}
	for i := 0; i < j.Values; i++ {
		if err := m.SerializeValue(String("v")); err != nil {
			return err
		}
	}
	return m.End()
}

// Boom fails without emitting anything.
type Boom struct{}

func (Boom) Serialize(ser.Serializer) error { return ErrBoom }

// Silent returns nil without emitting anything.
type Silent struct{}

func (Silent) Serialize(ser.Serializer) error { return nil }

// Twice emits two values into the same serializer.
type Twice struct{}

func (Twice) Serialize(s ser.Serializer) error {
	if err := s.SerializeBool(true); err != nil {
		return err
	}
	return s.SerializeBool(false)
}

// Order is a struct whose second item fails.
func Order() ser.Serializable {
	return ser.Func(func(s ser.Serializer) error {
		st, err := s.SerializeStruct("Order", 2)
		if err != nil {
			return err
		}
		if err := st.SerializeField("id", U8(7)); err != nil {
			return err
		}
		items := ser.Slice([]ser.Serializable{String("apple"), Boom{}, String("pear")})
		if err := st.SerializeField("items", items); err != nil {
			return err
		}
		return st.End()
	})
}
