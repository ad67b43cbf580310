package ser

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// UnknownLen is the length hint for sequences and maps whose size is not
// known up front.
const UnknownLen = -1

// ErrBuilderFinished is returned by a builder method called after End.
var ErrBuilderFinished = errors.New("ser: builder already finished")

// Serializable is implemented by values that can describe themselves to a
// Serializer.
type Serializable interface {
	Serialize(s Serializer) error
}

// Serializer receives exactly one value description.
type Serializer interface {
	// IsHumanReadable hints whether the output is meant for people. Values
	// may pick a more descriptive representation when it is true.
	IsHumanReadable() bool

	SerializeBool(v bool) error
	SerializeI8(v int8) error
	SerializeI16(v int16) error
	SerializeI32(v int32) error
	SerializeI64(v int64) error
	SerializeI128(v Int128) error
	SerializeU8(v uint8) error
	SerializeU16(v uint16) error
	SerializeU32(v uint32) error
	SerializeU64(v uint64) error
	SerializeU128(v Uint128) error
	SerializeF32(v float32) error
	SerializeF64(v float64) error
	SerializeChar(v rune) error
	SerializeStr(v string) error
	SerializeBytes(v []byte) error
	// CollectStr serializes the textual rendering of v as a string.
	CollectStr(v fmt.Stringer) error

	SerializeNone() error
	SerializeSome(v Serializable) error

	SerializeUnit() error
	SerializeUnitStruct(name string) error
	SerializeUnitVariant(name string, index uint32, variant string) error

	SerializeNewtypeStruct(name string, v Serializable) error
	SerializeNewtypeVariant(name string, index uint32, variant string, v Serializable) error

	// SerializeSeq starts a sequence. length is a hint; UnknownLen when absent.
	SerializeSeq(length int) (SerializeSeq, error)
	SerializeTuple(length int) (SerializeTuple, error)
	SerializeTupleStruct(name string, length int) (SerializeTupleStruct, error)
	SerializeTupleVariant(name string, index uint32, variant string, length int) (SerializeTupleVariant, error)
	// SerializeMap starts a map. length is a hint; UnknownLen when absent.
	SerializeMap(length int) (SerializeMap, error)
	SerializeStruct(name string, length int) (SerializeStruct, error)
	SerializeStructVariant(name string, index uint32, variant string, length int) (SerializeStructVariant, error)
}

// SerializeSeq receives the elements of a sequence.
type SerializeSeq interface {
	SerializeElement(v Serializable) error
	End() error
}

// SerializeTuple receives the elements of a fixed-size tuple.
type SerializeTuple interface {
	SerializeElement(v Serializable) error
	End() error
}

// SerializeTupleStruct receives the fields of a named tuple.
type SerializeTupleStruct interface {
	SerializeField(v Serializable) error
	End() error
}

// SerializeTupleVariant receives the fields of a tuple-shaped enum variant.
type SerializeTupleVariant interface {
	SerializeField(v Serializable) error
	End() error
}

// SerializeMap receives keys and values. Keys and values are usually
// interleaved but implementations must not rely on it.
type SerializeMap interface {
	SerializeKey(k Serializable) error
	SerializeValue(v Serializable) error
	// SerializeEntry is SerializeKey followed by SerializeValue.
	SerializeEntry(k, v Serializable) error
	End() error
}

// SerializeStruct receives named fields.
type SerializeStruct interface {
	SerializeField(name string, v Serializable) error
	// SkipField records that the field exists but carries no value.
	SkipField(name string) error
	End() error
}

// SerializeStructVariant receives the named fields of a struct-shaped enum
// variant.
type SerializeStructVariant interface {
	SerializeField(name string, v Serializable) error
	SkipField(name string) error
	End() error
}
