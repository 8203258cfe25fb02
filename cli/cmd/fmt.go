package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
)

// Fmt parses a document and writes it back in the chosen format.
type Fmt struct {
	Render renderFlags `embed:""`

	Strict  bool `help:"Reject duplicate keys within a map."`
	Compact bool `help:"Ignore line breaks between tokens."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := openSource(ctx, f.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("source", f.Source))
	}
	defer src.Close()

	v, err := lang.ParseReader(ctx, src,
		lang.WithCheckDuplicateEntry(f.Strict),
		lang.WithSkipLineSeparator(f.Compact),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return lang.WrapError(err).With(slog.String("source", f.Source))
	}

	return f.Render.render(ctx, stdoutFrom(ctx), v)
}
