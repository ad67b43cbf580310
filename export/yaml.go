package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/gosave"
	"github.com/reoring/gosave/ser"
)

// ToYAML converts n into a YAML document node. Unlike ToValue it keeps
// entry order and accepts keys of any shape. Non-unit variants are tagged
// with their name, e.g. `!Circle {radius: 2}`; unit variants are plain
// strings. Other rules follow ToValue.
func ToYAML[E any](n gosave.Node[E]) (*yaml.Node, error) {
	return toYAML(gosave.Root(), n)
}

// MarshalYAML renders ToYAML(n).
func MarshalYAML[E any](n gosave.Node[E]) ([]byte, error) {
	doc, err := ToYAML(n)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func null() *yaml.Node { return scalar("!!null", "null") }

func str(v string) *yaml.Node { return scalar("!!str", v) }

func float(f float64, bits int) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalar("!!float", ".nan")
	case math.IsInf(f, 1):
		return scalar("!!float", ".inf")
	case math.IsInf(f, -1):
		return scalar("!!float", "-.inf")
	}
	v := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(v, ".e") {
		v += ".0"
	}
	return scalar("!!float", v)
}

func toYAML[E any](p gosave.PathRef, n gosave.Node[E]) (*yaml.Node, error) {
	switch t := n.(type) {
	case nil:
		return null(), nil
	case gosave.Bool[E]:
		return scalar("!!bool", strconv.FormatBool(bool(t))), nil
	case gosave.I8[E]:
		return scalar("!!int", strconv.FormatInt(int64(t), 10)), nil
	case gosave.I16[E]:
		return scalar("!!int", strconv.FormatInt(int64(t), 10)), nil
	case gosave.I32[E]:
		return scalar("!!int", strconv.FormatInt(int64(t), 10)), nil
	case gosave.I64[E]:
		return scalar("!!int", strconv.FormatInt(int64(t), 10)), nil
	case gosave.I128[E]:
		return scalar("!!int", ser.Int128(t).String()), nil
	case gosave.U8[E]:
		return scalar("!!int", strconv.FormatUint(uint64(t), 10)), nil
	case gosave.U16[E]:
		return scalar("!!int", strconv.FormatUint(uint64(t), 10)), nil
	case gosave.U32[E]:
		return scalar("!!int", strconv.FormatUint(uint64(t), 10)), nil
	case gosave.U64[E]:
		return scalar("!!int", strconv.FormatUint(uint64(t), 10)), nil
	case gosave.U128[E]:
		return scalar("!!int", ser.Uint128(t).String()), nil
	case gosave.F32[E]:
		return float(float64(t), 32), nil
	case gosave.F64[E]:
		return float(float64(t), 64), nil
	case gosave.Char[E]:
		return str(string(rune(t))), nil
	case gosave.String[E]:
		return str(string(t)), nil
	case gosave.Bytes[E]:
		return nil, errors.Wrapf(ErrBytesUnsupported, "at %s", p)
	case gosave.Unit[E], gosave.UnitStruct[E]:
		return null(), nil
	case gosave.Option[E]:
		return toYAML(p, t.Value)
	case gosave.UnitVariant[E]:
		return str(t.Variant.Variant), nil
	case gosave.NewtypeStruct[E]:
		return toYAML(p, t.Value)
	case gosave.NewtypeVariant[E]:
		return taggedYAML(t.Variant, p, func(p gosave.PathRef) (*yaml.Node, error) { return toYAML(p, t.Value) })
	case gosave.Seq[E]:
		return yamlList(p, t)
	case gosave.Tuple[E]:
		return yamlList(p, t)
	case gosave.TupleStruct[E]:
		return yamlList(p, t.Values)
	case gosave.TupleVariant[E]:
		return taggedYAML(t.Variant, p, func(p gosave.PathRef) (*yaml.Node, error) { return yamlList(p, t.Values) })
	case gosave.Map[E]:
		return yamlMap(p, t)
	case gosave.Struct[E]:
		return yamlObject(p, t.Fields)
	case gosave.StructVariant[E]:
		return taggedYAML(t.Variant, p, func(p gosave.PathRef) (*yaml.Node, error) { return yamlObject(p, t.Fields) })
	case gosave.ErrorNode[E]:
		return nil, errorAt(p, t.Err)
	}
	return nil, errors.Newf("export: unsupported node %T at %s", n, p)
}

func taggedYAML(v gosave.VariantInfo, p gosave.PathRef, payload func(gosave.PathRef) (*yaml.Node, error)) (*yaml.Node, error) {
	y, err := payload(p.Field(v.Variant))
	if err != nil {
		return nil, err
	}
	y.Tag = "!" + v.Variant
	return y, nil
}

func yamlList[E any](p gosave.PathRef, ns []gosave.Node[E]) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i, n := range ns {
		y, err := toYAML(p.Index(i), n)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, y)
	}
	return out, nil
}

func yamlMap[E any](p gosave.PathRef, m gosave.Map[E]) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, pair := range m {
		at := p.Index(i)
		k, err := toYAML(at.Field("key"), pair.Key)
		if err != nil {
			return nil, err
		}
		v, err := toYAML(at.Field("value"), pair.Value)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, k, v)
	}
	return out, nil
}

func yamlObject[E any](p gosave.PathRef, fs []gosave.Field[E]) (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range fs {
		if f.Skipped() {
			continue
		}
		v, err := toYAML(p.Field(f.Name), f.Value)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, str(f.Name), v)
	}
	missing, err := skippedNames(p, fs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, name := range missing {
			seq.Content = append(seq.Content, str(name))
		}
		out.Content = append(out.Content, str(MissingKey), seq)
	}
	return out, nil
}
