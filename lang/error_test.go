package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  NewError("something failed"),
			want: "something failed",
		},
		{
			name: "with wrapped error",
			err:  NewError("operation failed").Wrap(NewError("inner error")),
			want: "operation failed: inner error",
		},
		{
			name: "empty message with wrapped",
			err:  (&Error{}).Wrap(NewError("inner")),
			want: "inner",
		},
		{
			name: "with attributes",
			err:  ErrParse.With(slog.String("reason", "empty key"), slog.Int("line", 2)),
			want: "parse error [reason=empty key line=2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_With(t *testing.T) {
	base := NewError("test error")
	withAttr := base.With(slog.String("key", "value"))

	if len(base.attrs) != 0 {
		t.Error("base error should have no attributes")
	}

	if len(withAttr.attrs) != 1 {
		t.Errorf("expected 1 attribute, got %d", len(withAttr.attrs))
	}

	withMore := withAttr.With(slog.Int("line", 3))
	if len(withAttr.attrs) != 1 || len(withMore.attrs) != 2 {
		t.Error("With must not modify the receiver")
	}
}

func TestError_Is(t *testing.T) {
	derived := ErrCast.With(slog.String("key", "a"))

	if !errors.Is(derived, ErrCast) {
		t.Error("derived error should match its sentinel")
	}

	if errors.Is(derived, ErrParse) {
		t.Error("derived error should not match another sentinel")
	}

	wrapped := ErrRead.Wrap(errors.New("disk on fire"))
	if !errors.Is(wrapped, ErrRead) {
		t.Error("wrapped error should match its sentinel")
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := NewError("inner")
	outer := NewError("outer").Wrap(inner)

	if !errors.Is(outer.Unwrap(), inner) {
		t.Error("Unwrap should return inner error")
	}

	if !errors.Is(outer, inner) {
		t.Error("errors.Is should find inner error")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wraps standard error", func(t *testing.T) {
		stdErr := errors.New("standard error")

		wrapped := WrapError(stdErr)
		if !errors.Is(wrapped, stdErr) {
			t.Error("should wrap standard error")
		}
	})

	t.Run("returns existing Error unchanged", func(t *testing.T) {
		existing := NewError("existing")
		if WrapError(existing) != existing {
			t.Error("should return existing Error as-is")
		}
	})
}

func TestAttrOf(t *testing.T) {
	inner := ErrParse.With(slog.Int("line", 7))
	outer := ErrRead.Wrap(inner).With(slog.String("path", "a.dfprop"))

	if v, ok := AttrOf(outer, "path"); !ok || v.String() != "a.dfprop" {
		t.Errorf("path = %v, %v", v, ok)
	}

	if v, ok := AttrOf(outer, "line"); !ok || v.Int64() != 7 {
		t.Errorf("line = %v, %v", v, ok)
	}

	if _, ok := AttrOf(outer, "column"); ok {
		t.Error("column should be absent")
	}

	if _, ok := AttrOf(errors.New("plain"), "line"); ok {
		t.Error("plain errors carry no attributes")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrRead.Wrap(errors.New("denied")).With(slog.String("path", "x"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v, want group", v.Kind())
	}

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "read failure", "cause": "denied", "path": "x"}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("%s = %q, want %q", k, got[k], w)
		}
	}
}
