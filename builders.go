package gosave

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/gosave/ser"
)

// Every builder is a two-state machine: it accumulates until End, which
// validates, emits the aggregate into the serializer that started it and
// finishes the builder. Calls after End return ser.ErrBuilderFinished.

// elements accumulates the unnamed children of sequences and tuple shapes.
type elements[E any] struct {
	s        *Serializer[E]
	kind     string
	expected int // ser.UnknownLen when the producer gave no hint
	items    []Node[E]
	finished bool
}

func newElements[E any](s *Serializer[E], kind string, expected int) elements[E] {
	return elements[E]{
		s:        s,
		kind:     kind,
		expected: expected,
		items:    make([]Node[E], 0, max(expected, 0)),
	}
}

func (b *elements[E]) push(v ser.Serializable) error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	n, err := b.s.capture(v)
	if err != nil {
		return err
	}
	b.items = append(b.items, n)
	return nil
}

func (b *elements[E]) finish() ([]Node[E], error) {
	if b.finished {
		return nil, ser.ErrBuilderFinished
	}
	b.finished = true
	if b.expected == ser.UnknownLen {
		return b.items, nil
	}
	n, err := b.s.checkLength(b.kind, b.expected, len(b.items))
	if err != nil {
		return nil, err
	}
	if n != nil {
		b.items = append(b.items, n)
	}
	return b.items, nil
}

// SeqBuilder accumulates a sequence. The length is only checked when the
// producer supplied a hint.
type SeqBuilder[E any] struct {
	elements[E]
}

func (b *SeqBuilder[E]) SerializeElement(v ser.Serializable) error { return b.push(v) }

func (b *SeqBuilder[E]) End() error {
	items, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(Seq[E](items))
}

// TupleBuilder accumulates a tuple.
type TupleBuilder[E any] struct {
	elements[E]
}

func (b *TupleBuilder[E]) SerializeElement(v ser.Serializable) error { return b.push(v) }

func (b *TupleBuilder[E]) End() error {
	items, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(Tuple[E](items))
}

// TupleStructBuilder accumulates a named tuple.
type TupleStructBuilder[E any] struct {
	elements[E]
	name string
}

func (b *TupleStructBuilder[E]) SerializeField(v ser.Serializable) error { return b.push(v) }

func (b *TupleStructBuilder[E]) End() error {
	items, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(TupleStruct[E]{Name: b.name, Values: items})
}

// TupleVariantBuilder accumulates a tuple-shaped enum variant.
type TupleVariantBuilder[E any] struct {
	elements[E]
	variant VariantInfo
}

func (b *TupleVariantBuilder[E]) SerializeField(v ser.Serializable) error { return b.push(v) }

func (b *TupleVariantBuilder[E]) End() error {
	items, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(TupleVariant[E]{Variant: b.variant, Values: items})
}

// MapBuilder accumulates keys and values in two independent buffers and
// pairs them up positionally on End.
type MapBuilder[E any] struct {
	s        *Serializer[E]
	expected int
	keys     []Node[E]
	values   []Node[E]
	finished bool
}

func (b *MapBuilder[E]) SerializeKey(k ser.Serializable) error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	n, err := b.s.capture(k)
	if err != nil {
		return err
	}
	b.keys = append(b.keys, n)
	return nil
}

func (b *MapBuilder[E]) SerializeValue(v ser.Serializable) error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	n, err := b.s.capture(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, n)
	return nil
}

func (b *MapBuilder[E]) SerializeEntry(k, v ser.Serializable) error {
	if err := b.SerializeKey(k); err != nil {
		return err
	}
	return b.SerializeValue(v)
}

// End zips keys with values. A missing side is filled with a protocol error;
// afterwards, when a hint was given, a pair count differing from it appends
// one more pair whose key and value are both the length error.
func (b *MapBuilder[E]) End() error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	b.finished = true

	nKeys, nValues := len(b.keys), len(b.values)
	pairs := make(Map[E], 0, max(nKeys, nValues))
	jagged := func() (Node[E], error) {
		msg := fmt.Sprintf("protocol error: map has %d keys and %d values", nKeys, nValues)
		return b.s.discipline.Handle(nil, b.s.protocolError(msg,
			zap.String("kind", "map"), zap.Int("keys", nKeys), zap.Int("values", nValues)))
	}
	for i := 0; i < max(nKeys, nValues); i++ {
		var p Pair[E]
		var err error
		if i < nKeys {
			p.Key = b.keys[i]
		} else if p.Key, err = jagged(); err != nil {
			return err
		}
		if i < nValues {
			p.Value = b.values[i]
		} else if p.Value, err = jagged(); err != nil {
			return err
		}
		pairs = append(pairs, p)
	}

	if b.expected != ser.UnknownLen && b.s.cfg.checkProtocol && b.expected != len(pairs) {
		msg := fmt.Sprintf("protocol error: expected a map of length %d, got %d", b.expected, len(pairs))
		k, err := b.s.discipline.Handle(nil, b.s.protocolError(msg,
			zap.String("kind", "map"), zap.Int("expected", b.expected), zap.Int("got", len(pairs))))
		if err != nil {
			return err
		}
		// Both sides get their own node; trees never share subtrees. The
		// mismatch is logged once, above.
		v, err := b.s.discipline.Handle(nil, newProtocolError(msg))
		if err != nil {
			return err
		}
		pairs = append(pairs, Pair[E]{Key: k, Value: v})
	}
	return b.s.emit(pairs)
}

// fields accumulates the named children of structs and struct variants.
type fields[E any] struct {
	s        *Serializer[E]
	kind     string
	expected int
	items    []Field[E]
	finished bool
}

func newFields[E any](s *Serializer[E], kind string, expected int) fields[E] {
	return fields[E]{
		s:        s,
		kind:     kind,
		expected: expected,
		items:    make([]Field[E], 0, max(expected, 0)),
	}
}

func (b *fields[E]) push(name string, v ser.Serializable) error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	n, err := b.s.capture(v)
	if err != nil {
		return err
	}
	b.items = append(b.items, Field[E]{Name: name, Value: n})
	return nil
}

func (b *fields[E]) skip(name string) error {
	if b.finished {
		return ser.ErrBuilderFinished
	}
	b.items = append(b.items, Field[E]{Name: name})
	return nil
}

// ErrorFieldName is the reserved field name under which struct protocol
// errors are appended.
const ErrorFieldName = "!error"

func (b *fields[E]) finish() ([]Field[E], error) {
	if b.finished {
		return nil, ser.ErrBuilderFinished
	}
	b.finished = true
	if !b.s.cfg.checkProtocol {
		return b.items, nil
	}
	// Only producer entries count towards the declared length.
	actual := len(b.items)

	if dups := duplicateNames(b.items); len(dups) > 0 {
		msg := fmt.Sprintf("protocol error: %s has duplicate field names: %s", b.kind, strings.Join(dups, ", "))
		n, err := b.s.discipline.Handle(nil, b.s.protocolError(msg,
			zap.String("kind", b.kind), zap.Strings("duplicates", dups)))
		if err != nil {
			return nil, err
		}
		b.items = append(b.items, Field[E]{Name: ErrorFieldName, Value: n})
	}

	n, err := b.s.checkLength(b.kind, b.expected, actual)
	if err != nil {
		return nil, err
	}
	if n != nil {
		b.items = append(b.items, Field[E]{Name: ErrorFieldName, Value: n})
	}
	return b.items, nil
}

// duplicateNames lists every repeated occurrence of a name, in order.
func duplicateNames[E any](fs []Field[E]) []string {
	seen := make(map[string]struct{}, len(fs))
	var dups []string
	for _, f := range fs {
		if _, ok := seen[f.Name]; ok {
			dups = append(dups, f.Name)
			continue
		}
		seen[f.Name] = struct{}{}
	}
	return dups
}

// StructBuilder accumulates a struct.
type StructBuilder[E any] struct {
	fields[E]
	name string
}

func (b *StructBuilder[E]) SerializeField(name string, v ser.Serializable) error {
	return b.push(name, v)
}

func (b *StructBuilder[E]) SkipField(name string) error { return b.skip(name) }

func (b *StructBuilder[E]) End() error {
	fs, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(Struct[E]{Name: b.name, Fields: fs})
}

// StructVariantBuilder accumulates a struct-shaped enum variant.
type StructVariantBuilder[E any] struct {
	fields[E]
	variant VariantInfo
}

func (b *StructVariantBuilder[E]) SerializeField(name string, v ser.Serializable) error {
	return b.push(name, v)
}

func (b *StructVariantBuilder[E]) SkipField(name string) error { return b.skip(name) }

func (b *StructVariantBuilder[E]) End() error {
	fs, err := b.finish()
	if err != nil {
		return err
	}
	return b.s.emit(StructVariant[E]{Variant: b.variant, Fields: fs})
}
