package gosave

import (
	"reflect"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/reoring/gosave/ser"
)

var (
	int128Type  = reflect.TypeOf((*ser.Int128)(nil)).Elem()
	uint128Type = reflect.TypeOf((*ser.Uint128)(nil)).Elem()
)

// From converts a plain Go value into a node without going through a
// ser.Serializable.
//
//   - a Node[E] is returned unchanged;
//   - other ser.Serializable values, including nodes with another error
//     payload, are captured with the default configuration; the first
//     failure (a persisted ErrorNode included) is returned as the error;
//   - bool, sized ints and floats map to their scalar node; int and uint map
//     to I64 and U64; ser.Int128 and ser.Uint128 to I128 and U128;
//   - string to String, []byte to Bytes;
//   - nil and nil pointers to None, other pointers to Some;
//   - slices to Seq, arrays to Tuple;
//   - maps to Map, entries ordered by Compare on the keys;
//   - structs to Struct named after the type, exported fields named by
//     ResolveStructKey; a zero field tagged omitempty is skipped.
//
// Channels, functions, complex numbers and unsafe pointers are rejected.
func From[E any](v any) (Node[E], error) {
	if v == nil {
		return Option[E]{}, nil
	}
	return fromValue[E](reflect.ValueOf(v))
}

func fromValue[E any](rv reflect.Value) (Node[E], error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Option[E]{}, nil
		}
	}
	if rv.CanInterface() {
		switch t := rv.Interface().(type) {
		case Node[E]:
			return t, nil
		case ser.Serializable:
			return captureAs[E](NewConfig(), t)
		}
	}
	switch rv.Type() {
	case int128Type:
		return I128[E](rv.Interface().(ser.Int128)), nil
	case uint128Type:
		return U128[E](rv.Interface().(ser.Uint128)), nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool[E](rv.Bool()), nil
	case reflect.Int8:
		return I8[E](rv.Int()), nil
	case reflect.Int16:
		return I16[E](rv.Int()), nil
	case reflect.Int32:
		return I32[E](rv.Int()), nil
	case reflect.Int, reflect.Int64:
		return I64[E](rv.Int()), nil
	case reflect.Uint8:
		return U8[E](rv.Uint()), nil
	case reflect.Uint16:
		return U16[E](rv.Uint()), nil
	case reflect.Uint32:
		return U32[E](rv.Uint()), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return U64[E](rv.Uint()), nil
	case reflect.Float32:
		return F32[E](rv.Float()), nil
	case reflect.Float64:
		return F64[E](rv.Float()), nil
	case reflect.String:
		return String[E](rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		inner, err := fromValue[E](rv.Elem())
		if err != nil {
			return nil, err
		}
		if rv.Kind() == reflect.Interface {
			return inner, nil
		}
		return Option[E]{Value: inner}, nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ByteBuf[E](rv.Bytes()), nil
		}
		items, err := fromElems[E](rv)
		if err != nil {
			return nil, err
		}
		return Seq[E](items), nil
	case reflect.Array:
		items, err := fromElems[E](rv)
		if err != nil {
			return nil, err
		}
		return Tuple[E](items), nil
	case reflect.Map:
		return fromMap[E](rv)
	case reflect.Struct:
		return fromStruct[E](rv)
	}
	return nil, errors.Newf("gosave: cannot convert value of type %s", rv.Type())
}

func fromElems[E any](rv reflect.Value) ([]Node[E], error) {
	out := make([]Node[E], 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		n, err := fromValue[E](rv.Index(i))
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		out = append(out, n)
	}
	return out, nil
}

func fromMap[E any](rv reflect.Value) (Node[E], error) {
	out := make(Map[E], 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := fromValue[E](iter.Key())
		if err != nil {
			return nil, errors.Wrap(err, "map key")
		}
		v, err := fromValue[E](iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "map value for key %v", iter.Key())
		}
		out = append(out, Pair[E]{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Pair[E]) int { return Compare(a.Key, b.Key) })
	return out, nil
}

func fromStruct[E any](rv reflect.Value) (Node[E], error) {
	rt := rv.Type()
	fs := make([]Field[E], 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if hasTagOption(sf, "omitempty") && fv.IsZero() {
			fs = append(fs, Field[E]{Name: name})
			continue
		}
		n, err := fromValue[E](fv)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", sf.Name)
		}
		fs = append(fs, Field[E]{Name: name, Value: n})
	}
	return Struct[E]{Name: rt.Name(), Fields: fs}, nil
}
