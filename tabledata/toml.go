package tabledata

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// EncodeTOML renders a map value as TOML, for tables that double as script
// configuration. TOML documents are tables at the top level, so only
// KindMap values can be encoded.
func EncodeTOML(v Value) ([]byte, error) {
	if v.Kind() != KindMap {
		return nil, fmt.Errorf("TOML documents must be maps, got %s", v.Kind())
	}
	native, err := toNative(v)
	if err != nil {
		return nil, err
	}
	out, err := toml.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return out, nil
}

// DecodeTOML parses a TOML document into a map value. Values outside the
// union (dates, times) are rejected. Keys are recorded in sorted order —
// TOML table order is not meaningful.
func DecodeTOML(data []byte) (Value, error) {
	var native map[string]any
	if err := toml.Unmarshal(data, &native); err != nil {
		return Value{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return fromNative(native)
}

// toNative converts a Value to the map/slice/scalar shapes toml.Marshal
// accepts. Insertion order is lost; go-toml emits keys in its own order.
func toNative(v Value) (any, error) {
	switch v.Kind() {
	case KindString:
		return v.str, nil
	case KindNumber:
		return v.num, nil
	case KindBool:
		return v.boolean, nil
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case KindMap:
		out := make(map[string]any, len(v.m.entries))
		for k, val := range v.m.entries {
			n, err := toNative(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot encode value of kind %d", v.kind)
	}
}

func fromNative(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int64:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := fromNative(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Seq(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := Map()
		for _, k := range keys {
			v, err := fromNative(x[k])
			if err != nil {
				return Value{}, err
			}
			m.Set(k, v)
		}
		return m, nil
	default:
		return Value{}, fmt.Errorf("TOML value of type %T is outside the table data model", raw)
	}
}
