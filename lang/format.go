package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes v in native dfprop syntax to the writer.
//
// The default layout puts each entry on its own line, prefixed by "; " and
// indented by [DefaultIndent] spaces per depth. Lists of scalars stay on one
// line. [WithOneLiner] selects the single-line layout.
func Format(w io.Writer, v *Value, opts ...FormatOption) error {
	s, err := FormatString(v, opts...)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, s)

	return err
}

// FormatString returns v in native dfprop syntax.
func FormatString(v *Value, opts ...FormatOption) (string, error) {
	cfg := makeFormatConfig(opts...)

	var sb strings.Builder

	f := formatter{cfg: cfg, sb: &sb}
	f.value(v, 0)

	return sb.String(), nil
}

// Marshal converts a host value with [ToValue] and formats the result.
func Marshal(host any, opts ...FormatOption) (string, error) {
	v, err := ToValue(host, opts...)
	if err != nil {
		return "", err
	}

	return FormatString(v, opts...)
}

// String returns v in the single-line layout with side spaces.
func (v *Value) String() string {
	s, _ := FormatString(v, WithOneLiner(true), WithSideSpace(true))

	return s
}

// formatter writes one document into a builder.
type formatter struct {
	cfg formatConfig
	sb  *strings.Builder
}

func (f formatter) value(v *Value, depth int) {
	switch KindOf(v) {
	case KindString:
		f.sb.WriteString(Escape(v.Str))

	case KindList:
		f.list(v.List, depth)

	case KindMap:
		f.dict(v.Map, depth)

	default:
		f.sb.WriteString(nullToken)
	}
}

func (f formatter) dict(m *Map, depth int) {
	f.sb.WriteString(mapPrefix)

	if m.Len() == 0 {
		f.sb.WriteRune(closeMark)

		return
	}

	if f.cfg.oneLiner {
		f.space()

		first := true
		for k, v := range m.All() {
			if !first {
				f.space()
				f.sb.WriteRune(delimMark)
				f.space()
			}

			first = false

			f.sb.WriteString(Escape(k))
			f.space()
			f.sb.WriteRune(equalMark)
			f.space()
			f.value(v, depth+1)
		}

		f.space()
		f.sb.WriteRune(closeMark)

		return
	}

	f.sb.WriteByte('\n')

	for k, v := range m.All() {
		f.indent(depth + 1)
		f.sb.WriteString("; ")
		f.sb.WriteString(Escape(k))
		f.sb.WriteString(" = ")
		f.value(v, depth+1)
		f.sb.WriteByte('\n')
	}

	f.indent(depth)
	f.sb.WriteRune(closeMark)
}

func (f formatter) list(list []*Value, depth int) {
	f.sb.WriteString(listPrefix)

	if len(list) == 0 {
		f.sb.WriteRune(closeMark)

		return
	}

	inline := f.cfg.oneLiner
	if !inline {
		inline = true

		for _, e := range list {
			if !e.IsScalar() {
				inline = false

				break
			}
		}
	}

	if inline {
		// Scalar lists in the indented layout always get side spaces.
		side := f.cfg.sideSpace || !f.cfg.oneLiner

		f.spaceIf(side)

		for i, e := range list {
			if i > 0 {
				f.spaceIf(side)
				f.sb.WriteRune(delimMark)
				f.spaceIf(side)
			}

			f.value(e, depth+1)
		}

		f.spaceIf(side)
		f.sb.WriteRune(closeMark)

		return
	}

	f.sb.WriteByte('\n')

	for _, e := range list {
		f.indent(depth + 1)
		f.sb.WriteString("; ")
		f.value(e, depth+1)
		f.sb.WriteByte('\n')
	}

	f.indent(depth)
	f.sb.WriteRune(closeMark)
}

func (f formatter) space() { f.spaceIf(f.cfg.sideSpace) }

func (f formatter) spaceIf(ok bool) {
	if ok {
		f.sb.WriteByte(' ')
	}
}

func (f formatter) indent(depth int) {
	f.sb.WriteString(strings.Repeat(" ", depth*f.cfg.indent))
}

// FormatJSON writes v as JSON to the writer. Map key order is preserved.
func FormatJSON(_ context.Context, w io.Writer, v *Value, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes v as YAML to the writer. Map key order is preserved.
func FormatYAML(ctx context.Context, w io.Writer, v *Value, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v.orderedNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
