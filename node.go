package gosave

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/gosave/ser"
)

// Kind identifies the concrete type of a Node. The order of the constants is
// the order Compare uses between nodes of different kinds.
type Kind int

const (
	KindBool Kind = iota
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindF32
	KindF64
	KindChar
	KindString
	KindBytes
	KindOption
	KindUnit
	KindUnitStruct
	KindUnitVariant
	KindNewtypeStruct
	KindNewtypeVariant
	KindSeq
	KindMap
	KindTuple
	KindTupleStruct
	KindTupleVariant
	KindStruct
	KindStructVariant
	KindError
)

var kindNames = [...]string{
	KindBool:           "bool",
	KindI8:             "i8",
	KindI16:            "i16",
	KindI32:            "i32",
	KindI64:            "i64",
	KindI128:           "i128",
	KindU8:             "u8",
	KindU16:            "u16",
	KindU32:            "u32",
	KindU64:            "u64",
	KindU128:           "u128",
	KindF32:            "f32",
	KindF64:            "f64",
	KindChar:           "char",
	KindString:         "string",
	KindBytes:          "bytes",
	KindOption:         "option",
	KindUnit:           "unit",
	KindUnitStruct:     "unit struct",
	KindUnitVariant:    "unit variant",
	KindNewtypeStruct:  "newtype struct",
	KindNewtypeVariant: "newtype variant",
	KindSeq:            "sequence",
	KindMap:            "map",
	KindTuple:          "tuple",
	KindTupleStruct:    "tuple struct",
	KindTupleVariant:   "tuple variant",
	KindStruct:         "struct",
	KindStructVariant:  "struct variant",
	KindError:          "error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is one captured value. The set of implementations is closed: the
// types in this file are the only nodes.
//
// E is the payload of ErrorNode. Trees built with the short-circuit
// discipline use Infallible and never contain an ErrorNode; trees built with
// the persisting discipline use *Error. Every node type carries E, so a
// Node[*Error] is never a Node[Infallible].
//
// A Node exclusively owns its children; trees never share subtrees.
type Node[E any] interface {
	ser.Serializable
	Kind() Kind
	node(E)
}

// ---- Scalars ----

type (
	Bool[E any]   bool
	I8[E any]     int8
	I16[E any]    int16
	I32[E any]    int32
	I64[E any]    int64
	I128[E any]   ser.Int128
	U8[E any]     uint8
	U16[E any]    uint16
	U32[E any]    uint32
	U64[E any]    uint64
	U128[E any]   ser.Uint128
	F32[E any]    float32
	F64[E any]    float64
	Char[E any]   rune
	String[E any] string
	Bytes[E any]  []byte
	// Unit is the empty value.
	Unit[E any] struct{}
)

func (Bool[E]) Kind() Kind   { return KindBool }
func (I8[E]) Kind() Kind     { return KindI8 }
func (I16[E]) Kind() Kind    { return KindI16 }
func (I32[E]) Kind() Kind    { return KindI32 }
func (I64[E]) Kind() Kind    { return KindI64 }
func (I128[E]) Kind() Kind   { return KindI128 }
func (U8[E]) Kind() Kind     { return KindU8 }
func (U16[E]) Kind() Kind    { return KindU16 }
func (U32[E]) Kind() Kind    { return KindU32 }
func (U64[E]) Kind() Kind    { return KindU64 }
func (U128[E]) Kind() Kind   { return KindU128 }
func (F32[E]) Kind() Kind    { return KindF32 }
func (F64[E]) Kind() Kind    { return KindF64 }
func (Char[E]) Kind() Kind   { return KindChar }
func (String[E]) Kind() Kind { return KindString }
func (Bytes[E]) Kind() Kind  { return KindBytes }
func (Unit[E]) Kind() Kind   { return KindUnit }

func (Bool[E]) node(E)   {}
func (I8[E]) node(E)     {}
func (I16[E]) node(E)    {}
func (I32[E]) node(E)    {}
func (I64[E]) node(E)    {}
func (I128[E]) node(E)   {}
func (U8[E]) node(E)     {}
func (U16[E]) node(E)    {}
func (U32[E]) node(E)    {}
func (U64[E]) node(E)    {}
func (U128[E]) node(E)   {}
func (F32[E]) node(E)    {}
func (F64[E]) node(E)    {}
func (Char[E]) node(E)   {}
func (String[E]) node(E) {}
func (Bytes[E]) node(E)  {}
func (Unit[E]) node(E)   {}

// ---- Options and named units ----

// Option holds zero or one node. A nil Value is None.
type Option[E any] struct {
	Value Node[E]
}

// UnitStruct is a struct without fields, e.g. `struct Marker;`.
type UnitStruct[E any] struct {
	Name string
}

// UnitVariant is an enum variant without payload.
type UnitVariant[E any] struct {
	Variant VariantInfo
}

// NewtypeStruct wraps exactly one value under a struct name.
type NewtypeStruct[E any] struct {
	Name  string
	Value Node[E]
}

// NewtypeVariant is an enum variant wrapping exactly one value.
type NewtypeVariant[E any] struct {
	Variant VariantInfo
	Value   Node[E]
}

func (Option[E]) Kind() Kind         { return KindOption }
func (UnitStruct[E]) Kind() Kind     { return KindUnitStruct }
func (UnitVariant[E]) Kind() Kind    { return KindUnitVariant }
func (NewtypeStruct[E]) Kind() Kind  { return KindNewtypeStruct }
func (NewtypeVariant[E]) Kind() Kind { return KindNewtypeVariant }

func (Option[E]) node(E)         {}
func (UnitStruct[E]) node(E)     {}
func (UnitVariant[E]) node(E)    {}
func (NewtypeStruct[E]) node(E)  {}
func (NewtypeVariant[E]) node(E) {}

// ---- Aggregates ----

// Seq is a dynamically sized sequence.
type Seq[E any] []Node[E]

// Pair is one map entry.
type Pair[E any] struct {
	Key   Node[E]
	Value Node[E]
}

// Map is an ordered list of entries, not a dictionary: duplicate keys are
// kept in position.
type Map[E any] []Pair[E]

// Tuple is a fixed-size sequence.
type Tuple[E any] []Node[E]

// TupleStruct is a named tuple, e.g. `struct Point(i32, i32);`.
type TupleStruct[E any] struct {
	Name   string
	Values []Node[E]
}

// TupleVariant is a tuple-shaped enum variant.
type TupleVariant[E any] struct {
	Variant VariantInfo
	Values  []Node[E]
}

// Field is one named struct field. A nil Value marks a field the producer
// skipped, which differs from a present Option with no value.
type Field[E any] struct {
	Name  string
	Value Node[E]
}

// Skipped reports whether the producer skipped the field.
func (f Field[E]) Skipped() bool { return f.Value == nil }

// Struct is a struct with named fields in emission order.
type Struct[E any] struct {
	Name   string
	Fields []Field[E]
}

// StructVariant is a struct-shaped enum variant.
type StructVariant[E any] struct {
	Variant VariantInfo
	Fields  []Field[E]
}

func (Seq[E]) Kind() Kind           { return KindSeq }
func (Map[E]) Kind() Kind           { return KindMap }
func (Tuple[E]) Kind() Kind         { return KindTuple }
func (TupleStruct[E]) Kind() Kind   { return KindTupleStruct }
func (TupleVariant[E]) Kind() Kind  { return KindTupleVariant }
func (Struct[E]) Kind() Kind        { return KindStruct }
func (StructVariant[E]) Kind() Kind { return KindStructVariant }

func (Seq[E]) node(E)           {}
func (Map[E]) node(E)           {}
func (Tuple[E]) node(E)         {}
func (TupleStruct[E]) node(E)   {}
func (TupleVariant[E]) node(E)  {}
func (Struct[E]) node(E)        {}
func (StructVariant[E]) node(E) {}

// ---- Errors ----

// ErrorNode is a failure persisted in the tree.
type ErrorNode[E any] struct {
	Err E
}

func (ErrorNode[E]) Kind() Kind { return KindError }
func (ErrorNode[E]) node(E)     {}

// ---- Constructors ----

// Some wraps n in a present Option.
func Some[E any](n Node[E]) Option[E] { return Option[E]{Value: n} }

// None returns an empty Option.
func None[E any]() Option[E] { return Option[E]{} }

// Present returns a field carrying n.
func Present[E any](name string, n Node[E]) Field[E] { return Field[E]{Name: name, Value: n} }

// Skip returns a skipped field.
func Skip[E any](name string) Field[E] { return Field[E]{Name: name} }

// Entry returns a map pair.
func Entry[E any](k, v Node[E]) Pair[E] { return Pair[E]{Key: k, Value: v} }

// Str returns a String node.
func Str[E any](s string) String[E] { return String[E](s) }

// ByteBuf copies b into a Bytes node.
func ByteBuf[E any](b []byte) Bytes[E] { return append(Bytes[E](nil), b...) }

// Widen re-types a tree captured with the short-circuit discipline so it can
// be embedded into a tree with another error payload. Such trees contain no
// ErrorNode, so the tree is replayed into a Serializer[E] unchanged.
func Widen[E any](n Node[Infallible]) Node[E] {
	if n == nil {
		return nil
	}
	out, err := retype[E](n)
	if err != nil {
		panic(errors.Wrap(err, "gosave: widen"))
	}
	return out
}
