package lang

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Structured is implemented by host types that supply their own map
// representation for serialization.
type Structured interface {
	ToStructuredValue() (*Map, error)
}

// ToValue converts a host value into a [Value] tree.
//
// Supported inputs are nil, strings, booleans, numbers, fmt.Stringer,
// slices of those, string-keyed Go maps (serialized in key order), [Ordered]
// maps, [Value] trees and [Structured] types. Anything else is offered to the
// [WithObjectMapper] hook, and failing that is an [ErrCast].
func ToValue(host any, opts ...FormatOption) (*Value, error) {
	return makeFormatConfig(opts...).toValue(host)
}

//nolint:cyclop,funlen // flat type switch
func (c formatConfig) toValue(host any) (*Value, error) {
	switch h := host.(type) {
	case nil:
		return Null(), nil

	case *Value:
		if h == nil {
			return Null(), nil
		}

		return h, nil

	case Value:
		return &h, nil

	case *Map:
		return MapOf(h), nil

	case string:
		return String(h), nil

	case bool:
		return String(strconv.FormatBool(h)), nil

	case int:
		return String(strconv.Itoa(h)), nil

	case int64:
		return String(strconv.FormatInt(h, 10)), nil

	case int32:
		return String(strconv.FormatInt(int64(h), 10)), nil

	case uint:
		return String(strconv.FormatUint(uint64(h), 10)), nil

	case uint64:
		return String(strconv.FormatUint(h, 10)), nil

	case uint32:
		return String(strconv.FormatUint(uint64(h), 10)), nil

	case float64:
		return String(strconv.FormatFloat(h, 'g', -1, 64)), nil

	case float32:
		return String(strconv.FormatFloat(float64(h), 'g', -1, 32)), nil

	case []*Value:
		return List(h...), nil

	case []string:
		list := make([]*Value, len(h))
		for i, s := range h {
			list[i] = String(s)
		}

		return List(list...), nil

	case []any:
		list := make([]*Value, len(h))

		for i, e := range h {
			v, err := c.toValue(e)
			if err != nil {
				return nil, err
			}

			list[i] = v
		}

		return List(list...), nil

	case *Ordered[string]:
		return fromOrdered(c, h)

	case *Ordered[[]string]:
		return fromOrdered(c, h)

	case *Ordered[*Ordered[string]]:
		return fromOrdered(c, h)

	case *Ordered[any]:
		return fromOrdered(c, h)

	case map[string]string:
		return fromGoMap(c, h)

	case map[string]any:
		return fromGoMap(c, h)

	case Structured:
		m, err := h.ToStructuredValue()
		if err != nil {
			return nil, ErrCast.Wrap(err).
				With(slog.String("type", typeName(host)))
		}

		return MapOf(m), nil
	}

	if c.mapper != nil {
		if m, ok := c.mapper(host); ok {
			return MapOf(m), nil
		}
	}

	if s, ok := host.(fmt.Stringer); ok {
		return String(s.String()), nil
	}

	return nil, ErrCast.With(
		slog.String("reason", "unsupported host type"),
		slog.String("type", typeName(host)),
	)
}

func fromOrdered[V any](c formatConfig, m *Ordered[V]) (*Value, error) {
	out := NewMap()

	for k, e := range m.All() {
		v, err := c.toValue(e)
		if err != nil {
			return nil, err
		}

		out.Set(k, v)
	}

	return MapOf(out), nil
}

func fromGoMap[V any](c formatConfig, m map[string]V) (*Value, error) {
	out := NewMap()

	for _, k := range sortedKeys(m) {
		v, err := c.toValue(m[k])
		if err != nil {
			return nil, err
		}

		out.Set(k, v)
	}

	return MapOf(out), nil
}

// Native converts v to plain Go values: nil, string, []any and
// map[string]any. Map order is lost; see [Value.MarshalJSON] for an
// order-preserving encoding.
func (v *Value) Native() any {
	switch KindOf(v) {
	case KindString:
		return v.Str

	case KindList:
		result := make([]any, len(v.List))
		for i, e := range v.List {
			result[i] = e.Native()
		}

		return result

	case KindMap:
		result := make(map[string]any, v.Map.Len())
		for k, e := range v.Map.All() {
			result[k] = e.Native()
		}

		return result

	default:
		return nil
	}
}

// orderedNative is like Native but represents maps as yaml.MapSlice.
func (v *Value) orderedNative() any {
	switch KindOf(v) {
	case KindString:
		return v.Str

	case KindList:
		result := make([]any, len(v.List))
		for i, e := range v.List {
			result[i] = e.orderedNative()
		}

		return result

	case KindMap:
		result := make(yaml.MapSlice, 0, v.Map.Len())
		for k, e := range v.Map.All() {
			result = append(result, yaml.MapItem{Key: k, Value: e.orderedNative()})
		}

		return result

	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler. Map key order is preserved.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch KindOf(v) {
	case KindString:
		return json.Marshal(v.Str)

	case KindList:
		return json.Marshal(v.List)

	case KindMap:
		return v.Map.MarshalJSON()

	default:
		return []byte("null"), nil
	}
}

// MarshalJSON implements json.Marshaler. Keys are written in insertion order.
func (m *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
