package lang

// Shape names used in [ErrCast] attributes.
const (
	shapeString    = "String"
	shapeList      = "List of String"
	shapeStringMap = "Map of String"
)

// AsStringMap projects every entry of m to a string.
// Null entries project to the empty string.
func AsStringMap(m *Map) (*Ordered[string], error) {
	out := NewOrdered[string]()

	for k, v := range m.All() {
		s, err := projectString(k, v)
		if err != nil {
			return nil, err
		}

		out.Set(k, s)
	}

	return out, nil
}

// AsListMap projects every entry of m to a list of strings.
// Null entries project to a nil slice.
func AsListMap(m *Map) (*Ordered[[]string], error) {
	out := NewOrdered[[]string]()

	for k, v := range m.All() {
		list, err := projectStrings(k, v)
		if err != nil {
			return nil, err
		}

		out.Set(k, list)
	}

	return out, nil
}

// AsMapMap projects every entry of m to a map of strings.
// Null entries project to an empty map.
func AsMapMap(m *Map) (*Ordered[*Ordered[string]], error) {
	out := NewOrdered[*Ordered[string]]()

	for k, v := range m.All() {
		switch KindOf(v) {
		case KindNull:
			out.Set(k, NewOrdered[string]())

		case KindMap:
			sub := NewOrdered[string]()

			for sk, sv := range v.Map.All() {
				s, err := projectString(k+"."+sk, sv)
				if err != nil {
					return nil, err
				}

				sub.Set(sk, s)
			}

			out.Set(k, sub)

		default:
			return nil, castError(k, shapeStringMap, v)
		}
	}

	return out, nil
}

// AsString projects a whole document to a string.
// Null projects to the empty string.
func AsString(v *Value) (string, error) {
	return projectString("", v)
}

// AsList projects a whole document to a list.
// Null projects to an empty list.
func AsList(v *Value) ([]*Value, error) {
	switch KindOf(v) {
	case KindNull:
		return []*Value{}, nil

	case KindList:
		return v.List, nil

	default:
		return nil, castError("", "List", v)
	}
}

func projectString(key string, v *Value) (string, error) {
	switch KindOf(v) {
	case KindNull:
		return "", nil

	case KindString:
		return v.Str, nil

	default:
		return "", castError(key, shapeString, v)
	}
}

func projectStrings(key string, v *Value) ([]string, error) {
	switch KindOf(v) {
	case KindNull:
		return nil, nil

	case KindList:
		list := make([]string, len(v.List))

		for i, e := range v.List {
			s, err := projectString(key, e)
			if err != nil {
				return nil, castError(key, shapeList, v)
			}

			list[i] = s
		}

		return list, nil

	default:
		return nil, castError(key, shapeList, v)
	}
}
