package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/dfprop/cli/cmd/exprenv"
	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
)

// Eval evaluates an expression against a resolved map.
type Eval struct {
	Resolve resolveFlags `embed:""`

	Path string `arg:"" help:"Logical document path."               name:"path"`
	Expr string `arg:"" help:"Expression over the document entries." name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := e.Resolve.resolver().ReadMap(ctx, e.Path, e.Resolve.Env)
	if err != nil {
		return err
	}

	result, err := exprenv.Eval(ctx, e.Expr, exprenv.Make(m))
	if err != nil {
		return lang.WrapError(err).With(slog.String("path", e.Path))
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("expr", e.Expr),
		slog.String("type", fmt.Sprintf("%T", result)))

	_, err = fmt.Fprintln(stdoutFrom(ctx), exprenv.Format(result))

	return err
}
