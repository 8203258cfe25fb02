package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler.
// Styles render plain text when the output is not a color terminal.
type palette struct {
	key, str, num, yes, no, dur, when, null lipgloss.Style
	trace, debug, info, warn, fail          lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		when:  fg("4"),
		null:  fg("8"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		fail:  fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail

	case l >= slog.LevelWarn:
		return p.warn

	case l >= slog.LevelInfo:
		return p.info

	case l >= slog.LevelDebug:
		return p.debug

	default:
		return p.trace
	}
}

// prettyHandler writes colorized records, either as a single key=value line
// or as an indented unquoted object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	format Format
	attrs  []slog.Attr // preformatted, group prefix applied
	prefix string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		style:  newPalette(w),
		format: format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		h.writeObject(buf, fields, r.Level)
	} else {
		h.writeLine(buf, fields, r.Level)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		c.attrs = flatten(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// builtin applies ReplaceAttr to a record field and drops it if emptied.
func (h *prettyHandler) builtin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	return append(fields, a)
}

// flatten appends a to fields, expanding groups into dotted keys.
func flatten(fields []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Equal(slog.Attr{}) {
			return fields
		}

		a.Key = prefix + a.Key

		return append(fields, a)
	}

	sub := prefix
	if a.Key != "" {
		sub += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		fields = flatten(fields, sub, g)
	}

	return fields
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr, l slog.Level) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(a, l))
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr, l slog.Level) {
	buf.WriteString("{\n")

	for i, a := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.value(a, l))
	}

	buf.WriteString("\n}")
}

// value renders the value of a, styled by its kind.
func (h *prettyHandler) value(a slog.Attr, l slog.Level) string {
	v := a.Value

	if a.Key == slog.LevelKey {
		s := v.String()
		if lv, ok := v.Any().(slog.Level); ok {
			s = strings.ToUpper(Level(lv).String())
		}

		return h.style.level(l).Render(s)
	}

	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(v.String())

	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.when.Render(v.Time().Format(time.RFC3339))

	default:
		if v.Any() == nil {
			return h.style.null.Render("null")
		}

		return h.style.str.Render(v.String())
	}
}
