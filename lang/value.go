package lang

import (
	"iter"
	"slices"
)

// Kind indicates the kind of a [Value].
type Kind int

const (
	// KindNull represents an absent value (the literal null or a bare value).
	KindNull Kind = iota

	// KindString represents a string leaf.
	KindString

	// KindList represents an ordered sequence of values.
	KindList

	// KindMap represents an insertion-ordered map of values.
	KindMap
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"

	case KindString:
		return "String"

	case KindList:
		return "List"

	case KindMap:
		return "Map"

	default:
		return "Unknown"
	}
}

// Value represents any node of a parsed document.
// A nil *Value is equivalent to a Null value.
type Value struct {
	Kind Kind
	// Exactly one of these will be set based on Kind
	Str  string           // For strings
	List []*Value         // For lists
	Map  *Ordered[*Value] // For maps
}

// Map is an insertion-ordered map of values.
type Map = Ordered[*Value]

// Null returns a new Null value.
func Null() *Value { return &Value{Kind: KindNull} }

// String returns a new String value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// List returns a new List value containing elems.
func List(elems ...*Value) *Value {
	if elems == nil {
		elems = []*Value{}
	}

	return &Value{Kind: KindList, List: elems}
}

// MapOf returns a new Map value wrapping m.
// A nil m yields an empty map.
func MapOf(m *Map) *Value {
	if m == nil {
		m = NewMap()
	}

	return &Value{Kind: KindMap, Map: m}
}

// NewMap returns an empty [Map].
func NewMap() *Map { return NewOrdered[*Value]() }

// KindOf returns the kind of v, treating nil as [KindNull].
func KindOf(v *Value) Kind {
	if v == nil {
		return KindNull
	}

	return v.Kind
}

// IsNull reports whether v is nil or a Null value.
func (v *Value) IsNull() bool { return KindOf(v) == KindNull }

// IsScalar reports whether v is a String or Null value.
func (v *Value) IsScalar() bool {
	k := KindOf(v)

	return k == KindNull || k == KindString
}

// Equal reports whether a and b represent the same tree.
// Map key order is significant.
func Equal(a, b *Value) bool {
	if KindOf(a) != KindOf(b) {
		return false
	}

	switch KindOf(a) {
	case KindNull:
		return true

	case KindString:
		return a.Str == b.Str

	case KindList:
		return slices.EqualFunc(a.List, b.List, Equal)

	case KindMap:
		return EqualMap(a.Map, b.Map)

	default:
		return false
	}
}

// EqualMap reports whether a and b hold equal values under the same keys in
// the same order.
func EqualMap(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}

	if !slices.Equal(a.Keys(), b.Keys()) {
		return false
	}

	return slices.EqualFunc(
		slices.Collect(a.Values()),
		slices.Collect(b.Values()),
		Equal,
	)
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	switch KindOf(v) {
	case KindString:
		return String(v.Str)

	case KindList:
		list := make([]*Value, len(v.List))
		for i, e := range v.List {
			list[i] = e.Clone()
		}

		return List(list...)

	case KindMap:
		m := NewMap()
		for k, e := range v.Map.All() {
			m.Set(k, e.Clone())
		}

		return MapOf(m)

	default:
		return Null()
	}
}

// Ordered is a string-keyed map that preserves insertion order.
// The zero value is not ready for use; see [NewOrdered].
type Ordered[V any] struct {
	keys  []string
	index map[string]V
}

// NewOrdered returns an empty [Ordered] map.
func NewOrdered[V any]() *Ordered[V] {
	return &Ordered[V]{index: make(map[string]V)}
}

// Len returns the number of entries.
func (m *Ordered[V]) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Ordered[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V

		return zero, false
	}

	v, ok := m.index[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Ordered[V]) Has(key string) bool {
	_, ok := m.Get(key)

	return ok
}

// Set stores value under key and reports whether an existing entry was
// replaced. A replaced entry keeps its original position.
func (m *Ordered[V]) Set(key string, value V) (replaced bool) {
	if _, replaced = m.index[key]; !replaced {
		m.keys = append(m.keys, key)
	}

	m.index[key] = value

	return replaced
}

// Delete removes key and reports whether it was present.
func (m *Ordered[V]) Delete(key string) bool {
	if _, ok := m.index[key]; !ok {
		return false
	}

	delete(m.index, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })

	return true
}

// Merge stores every entry of other into m in other's order.
// Keys already in m are overwritten in place.
func (m *Ordered[V]) Merge(other *Ordered[V]) {
	for k, v := range other.All() {
		m.Set(k, v)
	}
}

// Keys returns a copy of the keys in insertion order.
func (m *Ordered[V]) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// All returns an iterator over all entries in insertion order.
func (m *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.index[k]) {
				return
			}
		}
	}
}

// Values returns an iterator over all values in insertion order.
func (m *Ordered[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}
