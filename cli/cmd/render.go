package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/dfprop/lang"
)

// Output formats accepted by --as.
const (
	asNative = "native"
	asJSON   = "json"
	asYAML   = "yaml"
)

// renderFlags select how a document is written.
type renderFlags struct {
	As        string `default:"native" enum:"native,json,yaml" help:"Output format."                              short:"a"`
	OneLiner  bool   `help:"Write native output on a single line."`
	SideSpace bool   `help:"Pad single-line native output with spaces."`
	Indent    int    `default:"4"                              help:"Indent width (0 selects compact JSON or flow YAML)." short:"i"`
}

func (f renderFlags) render(ctx context.Context, w io.Writer, v *lang.Value) error {
	switch f.As {
	case asNative, "":
		err := lang.Format(w, v,
			lang.WithOneLiner(f.OneLiner),
			lang.WithSideSpace(f.SideSpace),
			lang.WithIndent(f.Indent),
		)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, "\n")

		return err

	case asJSON:
		return lang.FormatJSON(ctx, w, v, f.Indent)

	case asYAML:
		return lang.FormatYAML(ctx, w, v, f.Indent)

	default:
		return ErrFormat.With(slog.String("format", f.As))
	}
}
