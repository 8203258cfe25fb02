package lang

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"
)

// sortedKeys returns the keys of a host map in lexical order, giving
// unordered Go maps a stable serialization.
func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	return slices.Sorted(maps.Keys(m))
}

// typeName names the dynamic type of a host value for error attributes.
func typeName(value any) string {
	if value == nil {
		return "nil"
	}

	return reflect.TypeOf(value).String()
}

// castError returns an [ErrCast] for a projection of key that expected one
// shape but found another.
func castError(key, expected string, actual *Value) *Error {
	return ErrCast.With(
		slog.String("key", key),
		slog.String("expected", expected),
		slog.String("kind", KindOf(actual).String()),
		slog.String("actual", actual.String()),
	)
}
