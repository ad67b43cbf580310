package gosave

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/reoring/gosave/ser"
)

// Compare orders two nodes structurally. Nodes of different kinds are
// ordered by Kind; nodes of the same kind by payload, then children. Floats
// use cmp.Compare, so NaN equals NaN and sorts first. A nil node (None
// option payload, skipped field) sorts before any node.
func Compare[E any](a, b Node[E]) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch x := a.(type) {
	case Bool[E]:
		y := b.(Bool[E])
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case I8[E]:
		return cmp.Compare(x, b.(I8[E]))
	case I16[E]:
		return cmp.Compare(x, b.(I16[E]))
	case I32[E]:
		return cmp.Compare(x, b.(I32[E]))
	case I64[E]:
		return cmp.Compare(x, b.(I64[E]))
	case I128[E]:
		return ser.Int128(x).Compare(ser.Int128(b.(I128[E])))
	case U8[E]:
		return cmp.Compare(x, b.(U8[E]))
	case U16[E]:
		return cmp.Compare(x, b.(U16[E]))
	case U32[E]:
		return cmp.Compare(x, b.(U32[E]))
	case U64[E]:
		return cmp.Compare(x, b.(U64[E]))
	case U128[E]:
		return ser.Uint128(x).Compare(ser.Uint128(b.(U128[E])))
	case F32[E]:
		return cmp.Compare(x, b.(F32[E]))
	case F64[E]:
		return cmp.Compare(x, b.(F64[E]))
	case Char[E]:
		return cmp.Compare(x, b.(Char[E]))
	case String[E]:
		return strings.Compare(string(x), string(b.(String[E])))
	case Bytes[E]:
		return bytes.Compare(x, b.(Bytes[E]))
	case Unit[E]:
		return 0
	case Option[E]:
		return Compare(x.Value, b.(Option[E]).Value)
	case UnitStruct[E]:
		return cmp.Compare(x.Name, b.(UnitStruct[E]).Name)
	case UnitVariant[E]:
		return x.Variant.Compare(b.(UnitVariant[E]).Variant)
	case NewtypeStruct[E]:
		y := b.(NewtypeStruct[E])
		if c := cmp.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return Compare(x.Value, y.Value)
	case NewtypeVariant[E]:
		y := b.(NewtypeVariant[E])
		if c := x.Variant.Compare(y.Variant); c != 0 {
			return c
		}
		return Compare(x.Value, y.Value)
	case Seq[E]:
		return compareNodes(x, b.(Seq[E]))
	case Tuple[E]:
		return compareNodes(x, b.(Tuple[E]))
	case Map[E]:
		return comparePairs(x, b.(Map[E]))
	case TupleStruct[E]:
		y := b.(TupleStruct[E])
		if c := cmp.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return compareNodes(x.Values, y.Values)
	case TupleVariant[E]:
		y := b.(TupleVariant[E])
		if c := x.Variant.Compare(y.Variant); c != 0 {
			return c
		}
		return compareNodes(x.Values, y.Values)
	case Struct[E]:
		y := b.(Struct[E])
		if c := cmp.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return compareFields(x.Fields, y.Fields)
	case StructVariant[E]:
		y := b.(StructVariant[E])
		if c := x.Variant.Compare(y.Variant); c != 0 {
			return c
		}
		return compareFields(x.Fields, y.Fields)
	case ErrorNode[E]:
		return compareErrors(x.Err, b.(ErrorNode[E]).Err)
	}
	panic(fmt.Sprintf("gosave: unknown node type %T", a))
}

// Equal reports whether a and b are structurally equal.
func Equal[E any](a, b Node[E]) bool { return Compare(a, b) == 0 }

func compareNodes[E any](a, b []Node[E]) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func comparePairs[E any](a, b []Pair[E]) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := Compare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareFields[E any](a, b []Field[E]) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		if c := cmp.Compare(a[i].Name, b[i].Name); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

type protocolFlagger interface{ IsProtocol() bool }

// compareErrors orders error payloads by message, then protocol flag.
func compareErrors[E any](a, b E) int {
	if c := strings.Compare(payloadMessage(a), payloadMessage(b)); c != 0 {
		return c
	}
	pa, _ := any(a).(protocolFlagger)
	pb, _ := any(b).(protocolFlagger)
	fa := pa != nil && pa.IsProtocol()
	fb := pb != nil && pb.IsProtocol()
	switch {
	case fa == fb:
		return 0
	case !fa:
		return -1
	}
	return 1
}

func payloadMessage(p any) string {
	if err, ok := p.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(p)
}
