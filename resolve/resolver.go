package resolve

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/dfprop/lang"
)

// Resolver locates and merges dfprop documents.
//
// A Resolver is immutable after [New] and safe for concurrent use.
type Resolver struct {
	cfg config
}

// New returns a Resolver configured by opts.
func New(opts ...Option) *Resolver {
	var c config

	for _, opt := range opts {
		c = opt(c)
	}

	if c.ext == "" {
		c.ext = DefaultExtension
	}

	if c.fsys == nil {
		root := c.root
		if root == "" {
			root = "."
		}

		c.fsys = os.DirFS(root)
	}

	return &Resolver{cfg: c}
}

// Extension returns the document file extension.
func (r *Resolver) Extension() string { return r.cfg.ext }

// Candidates returns the files that a map resolution of path may read, in
// precedence order. An empty env yields only the base files.
func (r *Resolver) Candidates(path, env string) ([]Candidate, error) {
	name, err := cleanPath(path)
	if err != nil {
		return nil, err
	}

	var out []Candidate

	if env != "" {
		envName := envPath(name, env)
		out = append(out, Candidate{Path: envName, Role: RoleEnv})

		if inherit, ok := inheritPath(envName, r.cfg.ext); ok {
			out = append(out, Candidate{Path: inherit, Role: RoleEnvInherit})
		}
	}

	out = append(out, Candidate{Path: name, Role: RoleBase})

	if inherit, ok := inheritPath(name, r.cfg.ext); ok {
		out = append(out, Candidate{Path: inherit, Role: RoleBaseInherit})
	}

	return out, nil
}

// ReadMap resolves path under env into a single map.
//
// If the env file exists it is the base, overlaid by its inherit file.
// Otherwise the plain file is the base, overlaid by its inherit file and
// then by the env inherit file. Overlay replaces top-level keys only.
//
// path is slash-separated and relative to the resolver root. Paths that
// climb out with ".." or start with "/" fail with lang.ErrRead.
func (r *Resolver) ReadMap(ctx context.Context, path, env string) (*lang.Map, error) {
	cands, err := r.Candidates(path, env)
	if err != nil {
		return nil, err
	}

	byRole := make(map[Role]string, len(cands))
	for _, c := range cands {
		r.cfg.logger.TraceContext(ctx, "candidate", slog.Any("candidate", c))
		byRole[c.Role] = c.Path
	}

	var overlays []Role

	base, ok, err := r.loadMap(ctx, byRole, RoleEnv)
	if err != nil {
		return nil, err
	}

	if ok {
		overlays = []Role{RoleEnvInherit}
	} else {
		base, ok, err = r.loadMap(ctx, byRole, RoleBase)
		if err != nil {
			return nil, err
		}

		overlays = []Role{RoleBaseInherit, RoleEnvInherit}
	}

	if !ok {
		return notFound(ctx, r, path, env, lang.NewMap())
	}

	for _, role := range overlays {
		over, found, err := r.loadMap(ctx, byRole, role)
		if err != nil {
			return nil, err
		}

		if found {
			base.Merge(over)
		}
	}

	r.cfg.logger.DebugContext(ctx, "resolved map",
		slog.String("path", path),
		slog.String("env", env),
		slog.Int("entries", base.Len()))

	return base, nil
}

// ReadStringMap resolves a map whose entries are all strings.
func (r *Resolver) ReadStringMap(
	ctx context.Context,
	path, env string,
) (*lang.Ordered[string], error) {
	m, err := r.ReadMap(ctx, path, env)
	if err != nil {
		return nil, err
	}

	out, err := lang.AsStringMap(m)
	if err != nil {
		return nil, withPath(err, path)
	}

	return out, nil
}

// ReadListMap resolves a map whose entries are all lists of strings.
func (r *Resolver) ReadListMap(
	ctx context.Context,
	path, env string,
) (*lang.Ordered[[]string], error) {
	m, err := r.ReadMap(ctx, path, env)
	if err != nil {
		return nil, err
	}

	out, err := lang.AsListMap(m)
	if err != nil {
		return nil, withPath(err, path)
	}

	return out, nil
}

// ReadMapMap resolves a map whose entries are all maps of strings.
func (r *Resolver) ReadMapMap(
	ctx context.Context,
	path, env string,
) (*lang.Ordered[*lang.Ordered[string]], error) {
	m, err := r.ReadMap(ctx, path, env)
	if err != nil {
		return nil, err
	}

	out, err := lang.AsMapMap(m)
	if err != nil {
		return nil, withPath(err, path)
	}

	return out, nil
}

// ReadList resolves a list document from the env file, or else the plain
// file. Inherit files do not apply to lists.
func (r *Resolver) ReadList(ctx context.Context, path, env string) ([]*lang.Value, error) {
	text, name, ok, err := r.loadFirst(ctx, path, env)
	if err != nil {
		return nil, err
	}

	if !ok {
		return notFound(ctx, r, path, env, []*lang.Value{})
	}

	list, err := lang.ParseList(ctx, text, r.parseOptions()...)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("path", name))
	}

	return list, nil
}

// ReadString returns the text of the env file, or else the plain file, with
// comment lines removed. Inherit files do not apply to text.
func (r *Resolver) ReadString(ctx context.Context, path, env string) (string, error) {
	text, _, ok, err := r.loadFirst(ctx, path, env)
	if err != nil {
		return "", err
	}

	if !ok {
		return notFound(ctx, r, path, env, "")
	}

	return lang.ReadString(text, r.parseOptions()...), nil
}

// loadFirst reads the env file if present, otherwise the plain file.
func (r *Resolver) loadFirst(
	ctx context.Context,
	path, env string,
) (text, name string, ok bool, err error) {
	cands, err := r.Candidates(path, env)
	if err != nil {
		return "", "", false, err
	}

	for _, c := range cands {
		if c.Role != RoleEnv && c.Role != RoleBase {
			continue
		}

		r.cfg.logger.TraceContext(ctx, "candidate", slog.Any("candidate", c))

		text, ok, err = r.readFile(ctx, c.Path)
		if err != nil || ok {
			return text, c.Path, ok, err
		}
	}

	return "", "", false, nil
}

// loadMap reads and parses the candidate with the given role, if any.
func (r *Resolver) loadMap(
	ctx context.Context,
	byRole map[Role]string,
	role Role,
) (*lang.Map, bool, error) {
	name, ok := byRole[role]
	if !ok {
		return nil, false, nil
	}

	text, ok, err := r.readFile(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}

	m, err := lang.ParseMap(ctx, text, r.parseOptions()...)
	if err != nil {
		return nil, false, lang.WrapError(err).With(
			slog.String("path", name),
			slog.String("role", role.String()),
		)
	}

	return m, true, nil
}

// readFile returns the content of name. A missing file is reported as
// ok == false with a nil error.
func (r *Resolver) readFile(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, lang.WrapError(err)
	}

	f, err := r.cfg.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		r.cfg.logger.TraceContext(ctx, "file not found", slog.String("path", name))

		return "", false, nil
	}

	if err != nil {
		return "", false, lang.ErrRead.Wrap(err).With(slog.String("path", name))
	}

	defer f.Close()

	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", false, lang.ErrRead.Wrap(err).With(slog.String("path", name))
	}

	r.cfg.logger.DebugContext(ctx, "file loaded",
		slog.String("path", name),
		slog.Int("size", len(data)),
		slog.String("xxh3", strconv.FormatUint(xxh3.Hash(data), 16)))

	return string(data), true, nil
}

func (r *Resolver) parseOptions() []lang.ParseOption {
	return []lang.ParseOption{
		lang.WithCheckDuplicateEntry(r.cfg.checkDuplicateEntry),
		lang.WithSkipLineSeparator(r.cfg.skipLineSeparator),
		lang.WithLogger(r.cfg.logger),
	}
}

// notFound returns empty, or ErrNotFound under [WithNotFoundAsNil].
func notFound[T any](
	ctx context.Context,
	r *Resolver,
	path, env string,
	empty T,
) (T, error) {
	r.cfg.logger.DebugContext(ctx, "no document found",
		slog.String("path", path),
		slog.String("env", env))

	if r.cfg.notFoundAsNil {
		var zero T

		return zero, ErrNotFound.With(
			slog.String("path", path),
			slog.String("env", env),
		)
	}

	return empty, nil
}

// withPath attaches the logical path to a projection failure.
func withPath(err error, path string) error {
	return lang.WrapError(err).With(slog.String("path", path))
}
