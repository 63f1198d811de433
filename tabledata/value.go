// Package tabledata models free-form structured data — the nested
// string/number/boolean/map/sequence tables scripts persist between runs —
// as a closed, typed union with strict serialization. Loading a saved table
// can only ever produce plain data, never anything executable.
package tabledata

import "fmt"

// Kind identifies which member of the union a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindMap
	KindSeq
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindSeq:
		return "sequence"
	default:
		return "invalid"
	}
}

// Value is one node of a data table: a string, a number, a boolean, a
// string-keyed map (insertion-ordered), or a sequence. The zero Value is the
// empty string.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	m       *mapData
	seq     []Value
}

// mapData sits behind a pointer so Set mutates the map a caller holds, and
// so key insertion order travels with the entries.
type mapData struct {
	keys    []string
	entries map[string]Value
}

// String builds a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number builds a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool builds a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Seq builds a sequence value.
func Seq(items ...Value) Value {
	return Value{kind: KindSeq, seq: items}
}

// Map builds an empty map value; populate it with Set.
func Map() Value {
	return Value{kind: KindMap, m: &mapData{entries: map[string]Value{}}}
}

// Kind reports which union member v holds.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string member.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is %s, not string", v.kind)
	}
	return v.str, nil
}

// AsNumber returns the numeric member.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("value is %s, not number", v.kind)
	}
	return v.num, nil
}

// AsBool returns the boolean member.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value is %s, not bool", v.kind)
	}
	return v.boolean, nil
}

// Len returns the element count of a map or sequence, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.m.keys)
	case KindSeq:
		return len(v.seq)
	default:
		return 0
	}
}

// Index returns element i of a sequence.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindSeq {
		return Value{}, fmt.Errorf("value is %s, not sequence", v.kind)
	}
	if i < 0 || i >= len(v.seq) {
		return Value{}, fmt.Errorf("sequence index %d out of range (len %d)", i, len(v.seq))
	}
	return v.seq[i], nil
}

// Keys returns map keys in insertion order. Nil for non-maps.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	out := make([]string, len(v.m.keys))
	copy(out, v.m.keys)
	return out
}

// Get looks up a map key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	val, ok := v.m.entries[key]
	return val, ok
}

// Set stores key on a map value, preserving first-insertion order, and
// returns the map to allow chained building. Panics on non-maps.
func (v Value) Set(key string, val Value) Value {
	if v.kind != KindMap {
		panic("tabledata: Set on non-map value")
	}
	if _, exists := v.m.entries[key]; !exists {
		v.m.keys = append(v.m.keys, key)
	}
	v.m.entries[key] = val
	return v
}

// Equal reports deep equality. Sequences compare element-wise in order; maps
// compare by key set and per-key values, ignoring insertion order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBool:
		return a.boolean == b.boolean
	case KindSeq:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m.entries) != len(b.m.entries) {
			return false
		}
		for k, av := range a.m.entries {
			bv, ok := b.m.entries[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
