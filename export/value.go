// Package export converts captured trees into dynamic Go values, JSON and
// YAML documents. The conversion is one-way and lossy: struct and enum names,
// variant indices and the distinction between sequences and tuples are
// dropped.
package export

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/reoring/gosave"
	"github.com/reoring/gosave/ser"
)

// MissingKey lists the names of skipped struct fields. It shares the
// namespace of field names: a struct that has both skipped fields and a
// present field named MissingKey fails with ErrReservedKey.
const MissingKey = "!missing"

// ErrReservedKey is returned when a present field name collides with
// MissingKey.
var ErrReservedKey = errors.New("export: field name is reserved")

// ErrBytesUnsupported is returned for Bytes nodes, which have no dynamic
// representation.
var ErrBytesUnsupported = errors.New("export: bytes are not supported")

// ToValue converts n into bool, int64, uint64, float64, string, nil, []any
// and map[string]any values.
//
//   - 128-bit integers become decimal strings, chars one-rune strings;
//   - unit, unit structs and None become nil; options and newtype structs
//     become their payload;
//   - unit variants become their name, other variants a single-key map from
//     the variant name to the payload;
//   - sequences, tuples and tuple structs become []any;
//   - maps whose keys are all strings become map[string]any (a repeated key
//     keeps its last value); other maps become a []any of {"key","value"}
//     maps;
//   - structs become map[string]any of their present fields, with skipped
//     field names listed under MissingKey.
//
// Bytes fail with ErrBytesUnsupported and an ErrorNode fails with its error.
// Both errors name the JSON Pointer of the offending node.
func ToValue[E any](n gosave.Node[E]) (any, error) {
	return toValue(gosave.Root(), n)
}

func toValue[E any](p gosave.PathRef, n gosave.Node[E]) (any, error) {
	switch t := n.(type) {
	case nil:
		return nil, nil
	case gosave.Bool[E]:
		return bool(t), nil
	case gosave.I8[E]:
		return int64(t), nil
	case gosave.I16[E]:
		return int64(t), nil
	case gosave.I32[E]:
		return int64(t), nil
	case gosave.I64[E]:
		return int64(t), nil
	case gosave.I128[E]:
		return ser.Int128(t).String(), nil
	case gosave.U8[E]:
		return uint64(t), nil
	case gosave.U16[E]:
		return uint64(t), nil
	case gosave.U32[E]:
		return uint64(t), nil
	case gosave.U64[E]:
		return uint64(t), nil
	case gosave.U128[E]:
		return ser.Uint128(t).String(), nil
	case gosave.F32[E]:
		return float64(t), nil
	case gosave.F64[E]:
		return float64(t), nil
	case gosave.Char[E]:
		return string(rune(t)), nil
	case gosave.String[E]:
		return string(t), nil
	case gosave.Bytes[E]:
		return nil, errors.Wrapf(ErrBytesUnsupported, "at %s", p)
	case gosave.Unit[E], gosave.UnitStruct[E]:
		return nil, nil
	case gosave.Option[E]:
		return toValue(p, t.Value)
	case gosave.UnitVariant[E]:
		return t.Variant.Variant, nil
	case gosave.NewtypeStruct[E]:
		return toValue(p, t.Value)
	case gosave.NewtypeVariant[E]:
		return tagged(t.Variant, p, func(p gosave.PathRef) (any, error) { return toValue(p, t.Value) })
	case gosave.Seq[E]:
		return toList(p, t)
	case gosave.Tuple[E]:
		return toList(p, t)
	case gosave.TupleStruct[E]:
		return toList(p, t.Values)
	case gosave.TupleVariant[E]:
		return tagged(t.Variant, p, func(p gosave.PathRef) (any, error) { return toList(p, t.Values) })
	case gosave.Map[E]:
		return toMap(p, t)
	case gosave.Struct[E]:
		return toObject(p, t.Fields)
	case gosave.StructVariant[E]:
		return tagged(t.Variant, p, func(p gosave.PathRef) (any, error) { return toObject(p, t.Fields) })
	case gosave.ErrorNode[E]:
		return nil, errorAt(p, t.Err)
	}
	return nil, errors.Newf("export: unsupported node %T at %s", n, p)
}

func tagged(v gosave.VariantInfo, p gosave.PathRef, payload func(gosave.PathRef) (any, error)) (any, error) {
	inner, err := payload(p.Field(v.Variant))
	if err != nil {
		return nil, err
	}
	return map[string]any{v.Variant: inner}, nil
}

func toList[E any](p gosave.PathRef, ns []gosave.Node[E]) ([]any, error) {
	out := make([]any, len(ns))
	for i, n := range ns {
		v, err := toValue(p.Index(i), n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func toMap[E any](p gosave.PathRef, m gosave.Map[E]) (any, error) {
	stringKeys := lo.EveryBy(m, func(pair gosave.Pair[E]) bool {
		_, ok := pair.Key.(gosave.String[E])
		return ok
	})
	if stringKeys {
		out := make(map[string]any, len(m))
		for i, pair := range m {
			v, err := toValue(p.Index(i).Field("value"), pair.Value)
			if err != nil {
				return nil, err
			}
			out[string(pair.Key.(gosave.String[E]))] = v
		}
		return out, nil
	}
	out := make([]any, len(m))
	for i, pair := range m {
		at := p.Index(i)
		k, err := toValue(at.Field("key"), pair.Key)
		if err != nil {
			return nil, err
		}
		v, err := toValue(at.Field("value"), pair.Value)
		if err != nil {
			return nil, err
		}
		out[i] = map[string]any{"key": k, "value": v}
	}
	return out, nil
}

func toObject[E any](p gosave.PathRef, fs []gosave.Field[E]) (map[string]any, error) {
	out := make(map[string]any, len(fs))
	for _, f := range fs {
		if f.Skipped() {
			continue
		}
		v, err := toValue(p.Field(f.Name), f.Value)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	missing, err := skippedNames(p, fs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		out[MissingKey] = lo.ToAnySlice(missing)
	}
	return out, nil
}

// skippedNames lists the skipped fields of fs, failing when one of the
// present fields would be overwritten by the list.
func skippedNames[E any](p gosave.PathRef, fs []gosave.Field[E]) ([]string, error) {
	missing := lo.FilterMap(fs, func(f gosave.Field[E], _ int) (string, bool) {
		return f.Name, f.Skipped()
	})
	taken := lo.ContainsBy(fs, func(f gosave.Field[E]) bool {
		return f.Name == MissingKey && !f.Skipped()
	})
	if len(missing) > 0 && taken {
		return nil, errors.Wrapf(ErrReservedKey, "%q at %s", MissingKey, p)
	}
	return missing, nil
}

func errorAt[E any](p gosave.PathRef, payload E) error {
	if err, ok := any(payload).(error); ok {
		return errors.Wrapf(err, "export: error node at %s", p)
	}
	return errors.Newf("export: error node at %s: %v", p, payload)
}

// MarshalJSON renders ToValue(n) as JSON. Object keys are sorted.
func MarshalJSON[E any](n gosave.Node[E]) ([]byte, error) {
	v, err := ToValue(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
