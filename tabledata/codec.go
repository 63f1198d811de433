package tabledata

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Encode renders v as canonical YAML. The output contains only plain
// strings, numbers, booleans, maps and sequences; map keys appear in
// insertion order.
func Encode(v Value) ([]byte, error) {
	node, err := encodeNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// Decode parses data produced by Encode (or hand-written YAML restricted to
// the same shapes) back into a Value. It is deliberately strict: aliases,
// anchors are fine to *resolve* but alias nodes, custom or non-core tags,
// nulls, non-string map keys and duplicate keys are all rejected, so decoded
// data always stays inside the Value union.
func Decode(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("failed to parse table data: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return Value{}, fmt.Errorf("expected exactly one document, got %d", len(doc.Content))
	}
	return decodeNode(doc.Content[0])
}

func encodeNode(v Value) (*yaml.Node, error) {
	switch v.kind {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}, nil

	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("cannot encode non-finite number %v", v.num)
		}
		node := &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v.num, 'g', -1, 64)}
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			node.Tag = "!!int"
			node.Value = strconv.FormatInt(int64(v.num), 10)
		} else {
			node.Tag = "!!float"
		}
		return node, nil

	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.boolean)}, nil

	case KindSeq:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.seq {
			child, err := encodeNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.m.keys {
			child, err := encodeNode(v.m.entries[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil

	default:
		return nil, fmt.Errorf("cannot encode value of kind %d", v.kind)
	}
}

func decodeNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return Value{}, fmt.Errorf("line %d: aliases are not allowed in table data", n.Line)

	case yaml.ScalarNode:
		return decodeScalar(n)

	case yaml.SequenceNode:
		if n.Tag != "!!seq" {
			return Value{}, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
		}
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := decodeNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Seq(items...), nil

	case yaml.MappingNode:
		if n.Tag != "!!map" {
			return Value{}, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
		}
		m := Map()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
				return Value{}, fmt.Errorf("line %d: map keys must be plain strings, got %s", keyNode.Line, keyNode.Tag)
			}
			if _, dup := m.Get(keyNode.Value); dup {
				return Value{}, fmt.Errorf("line %d: duplicate map key %q", keyNode.Line, keyNode.Value)
			}
			val, err := decodeNode(valNode)
			if err != nil {
				return Value{}, err
			}
			m.Set(keyNode.Value, val)
		}
		return m, nil

	default:
		return Value{}, fmt.Errorf("line %d: unsupported node kind", n.Line)
	}
}

func decodeScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!str":
		return String(n.Value), nil

	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: invalid integer %q: %w", n.Line, n.Value, err)
		}
		return Number(float64(i)), nil

	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("line %d: invalid number %q", n.Line, n.Value)
		}
		return Number(f), nil

	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: invalid boolean %q", n.Line, n.Value)
		}
		return Bool(b), nil

	case "!!null":
		return Value{}, fmt.Errorf("line %d: null is not part of the table data model", n.Line)

	default:
		return Value{}, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
	}
}
