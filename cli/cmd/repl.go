package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/dfprop/cli/cmd/repl"
	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
)

// Repl starts an interactive expression prompt over a resolved map.
type Repl struct {
	Resolve resolveFlags `embed:""`

	History bool   `default:"true"                    help:"Persist submitted lines." negatable:""`
	Path    string `arg:""         help:"Logical document path." name:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res := r.Resolve.resolver()

	load := func(ctx context.Context) (*lang.Map, error) {
		return res.ReadMap(ctx, r.Path, r.Resolve.Env)
	}

	opts := []repl.Option{repl.WithLogger(log.Default())}

	if dir := r.cacheDir(ctx); dir != "" && r.History {
		opts = append(opts, repl.WithHistory(repl.HistoryPath(dir)))
	}

	in, _ := ctx.Value(stdinKey{}).(io.Reader)
	out, _ := ctx.Value(stdoutKey{}).(io.Writer)

	if in != nil || out != nil {
		opts = append(opts, repl.WithIO(in, out))
	}

	log.DebugContext(ctx, "repl start",
		slog.String("path", r.Path),
		slog.String("env", r.Resolve.Env))

	return repl.Run(ctx, load, opts...)
}

func (r *Repl) cacheDir(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[CacheIdentifier]
}
