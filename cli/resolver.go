package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dfprop/lang"
	"github.com/ardnew/dfprop/log"
)

// loadConfig is a [kong.ConfigurationLoader] that reads flag defaults from a
// dfprop map document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadConfig, "/path/to/config.dfprop")
//
// Entries are matched to flags by name:
//   - Nested maps join their keys with hyphens, so log = map:{ ; level = debug }
//     sets --log-level
//   - Keys may use underscores in place of hyphens (log_level)
//   - Lists are joined with commas for slice flags
//   - Null entries are ignored
//
// Example config file:
//
//	map:{
//	    ; log-level = debug
//	    ; log = map:{ ; format = json ; pretty = false }
//	}
//
// Command-line flags override config file values. A document that fails to
// parse is ignored with a warning.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	ctx := context.Background()

	v, err := lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
	if err != nil {
		log.WarnContext(ctx, "configuration ignored", slog.Any("error", err))

		return config{}, nil
	}

	if lang.KindOf(v) != lang.KindMap {
		log.WarnContext(ctx, "configuration ignored",
			slog.String("kind", lang.KindOf(v).String()))

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", v.Map)

	return cfg, nil
}

// config implements [kong.Resolver] for dfprop configuration documents.
type config map[string]string

// flatten adds the entries of m to c, joining nested keys with hyphens.
func (c config) flatten(prefix string, m *lang.Map) {
	for k, v := range m.All() {
		name := k
		if prefix != "" {
			name = prefix + "-" + k
		}

		switch lang.KindOf(v) {
		case lang.KindMap:
			c.flatten(name, v.Map)

		case lang.KindList:
			elems := make([]string, 0, len(v.List))

			for _, e := range v.List {
				if s, err := lang.AsString(e); err == nil {
					elems = append(elems, s)
				}
			}

			c[name] = strings.Join(elems, ",")

		case lang.KindString:
			c[name] = v.Str
		}
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config keys
	// may use underscores. Try both forms.
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
