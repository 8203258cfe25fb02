package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
	"github.com/ardnew/dfprop/resolve"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	stdinKey  struct{}
	stdoutKey struct{}
)

// WithStdio returns a new context.Context whose commands read standard input
// from in and write results to out. A nil reader or writer keeps the process
// default.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	if in != nil {
		ctx = context.WithValue(ctx, stdinKey{}, in)
	}

	if out != nil {
		ctx = context.WithValue(ctx, stdoutKey{}, out)
	}

	return ctx
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

func stdoutFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named file, or standard input for [stdinSource].
func openSource(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == stdinSource {
		return io.NopCloser(stdinFrom(ctx)), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, lang.ErrRead.Wrap(err)
	}

	return f, nil
}

// resolveFlags are the flags shared by commands that resolve a logical path.
type resolveFlags struct {
	Env     string `help:"Environment tag overlaid on the base document." short:"e"`
	Root    string `default:"."                                          help:"Directory containing the documents; paths are relative to it and may not use '..' or a leading '/'." short:"r" type:"existingdir"`
	Ext     string `default:"${ext}"                                     help:"Document file extension."`
	Strict  bool   `help:"Reject duplicate keys within a map."`
	Compact bool   `help:"Ignore line breaks between tokens."`
	Require bool   `help:"Fail when no document resolves."`
}

func (f resolveFlags) resolver() *resolve.Resolver {
	return resolve.New(
		resolve.WithRoot(f.Root),
		resolve.WithExtension(f.Ext),
		resolve.WithCheckDuplicateEntry(f.Strict),
		resolve.WithSkipLineSeparator(f.Compact),
		resolve.WithNotFoundAsNil(f.Require),
		resolve.WithLogger(log.Default()),
	)
}
