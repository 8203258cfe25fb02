package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/resolve"
)

// Shapes accepted by --shape.
const (
	shapeMap       = "map"
	shapeStringMap = "string-map"
	shapeListMap   = "list-map"
	shapeMapMap    = "map-map"
	shapeList      = "list"
	shapeText      = "text"
)

// maxSuggestions bounds the "did you mean" list of a missing key.
const maxSuggestions = 3

// Get resolves a logical path and writes the resulting document.
type Get struct {
	Resolve resolveFlags `embed:""`
	Render  renderFlags  `embed:""`

	Shape string `default:"map" enum:"map,string-map,list-map,map-map,list,text" help:"Expected document shape." short:"s"`

	Path string `arg:"" help:"Logical document path, such as conf/db.dfprop." name:"path"`
	Key  string `arg:"" help:"Select a single top-level entry."                name:"key"  optional:""`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r := g.Resolve.resolver()
	w := stdoutFrom(ctx)

	if g.Shape == shapeText {
		text, err := r.ReadString(ctx, g.Path, g.Resolve.Env)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, text)

		return err
	}

	v, err := g.read(ctx, r)
	if err != nil {
		return err
	}

	if g.Key != "" {
		if v, err = selectKey(v, g.Key); err != nil {
			return lang.WrapError(err).With(slog.String("path", g.Path))
		}
	}

	return g.Render.render(ctx, w, v)
}

// read resolves the document in the requested shape.
func (g *Get) read(ctx context.Context, r *resolve.Resolver) (*lang.Value, error) {
	var (
		host any
		err  error
	)

	switch g.Shape {
	case shapeStringMap:
		host, err = r.ReadStringMap(ctx, g.Path, g.Resolve.Env)

	case shapeListMap:
		host, err = r.ReadListMap(ctx, g.Path, g.Resolve.Env)

	case shapeMapMap:
		host, err = r.ReadMapMap(ctx, g.Path, g.Resolve.Env)

	case shapeList:
		host, err = r.ReadList(ctx, g.Path, g.Resolve.Env)

	default:
		host, err = r.ReadMap(ctx, g.Path, g.Resolve.Env)
	}

	if err != nil {
		return nil, err
	}

	return lang.ToValue(host)
}

// selectKey returns the entry key of the map v. A missing key reports the
// closest existing keys.
func selectKey(v *lang.Value, key string) (*lang.Value, error) {
	if lang.KindOf(v) != lang.KindMap {
		return nil, ErrNotMap.With(
			slog.String("key", key),
			slog.String("kind", lang.KindOf(v).String()),
		)
	}

	if e, ok := v.Map.Get(key); ok {
		return e, nil
	}

	err := ErrKeyNotFound.With(slog.String("key", key))

	if s := suggest(key, v.Map.Keys()); len(s) > 0 {
		err = err.With(slog.String("suggest", strings.Join(s, ",")))
	}

	return nil, err
}

// suggest returns up to maxSuggestions keys that fuzzy-match key, best first.
func suggest(key string, keys []string) []string {
	matches := fuzzy.Find(key, keys)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
