package exprenv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/dfprop/lang"
)

var (
	// ErrCompile is returned when an expression does not compile.
	ErrCompile = lang.NewError("compile expression")

	// ErrEval is returned when a compiled expression fails at run time.
	ErrEval = lang.NewError("evaluate expression")
)

// Eval compiles and runs source against env.
func Eval(ctx context.Context, source string, env map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, lang.WrapError(err)
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.String("expr", source))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrEval.Wrap(err).With(slog.String("expr", source))
	}

	return out, nil
}

// Format renders an evaluation result. Strings are returned unchanged and
// nil renders as "null"; other results use the one-line dfprop layout when
// they convert to a [lang.Value].
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"

	case string:
		return t
	}

	val, err := lang.ToValue(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return val.String()
}
