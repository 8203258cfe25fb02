package resolve

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/ardnew/dfprop/lang"
)

// Role identifies how a candidate file takes part in a resolution.
type Role int

const (
	RoleEnv         Role = iota // env
	RoleEnvInherit              // env+
	RoleBase                    // base
	RoleBaseInherit             // base+
)

// String returns the short name of the role.
func (r Role) String() string {
	switch r {
	case RoleEnv:
		return "env"

	case RoleEnvInherit:
		return "env+"

	case RoleBase:
		return "base"

	case RoleBaseInherit:
		return "base+"

	default:
		return "unknown"
	}
}

// Candidate is a file that a resolution may read.
type Candidate struct {
	Path string
	Role Role
}

// LogValue implements slog.LogValuer.
func (c Candidate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("role", c.Role.String()),
		slog.String("path", c.Path),
	)
}

// envPath inserts env as the last directory of p.
func envPath(p, env string) string {
	dir, file := path.Split(p)

	return dir + env + "/" + file
}

// inheritPath replaces the trailing extension of p with "+" and the
// extension. Paths that do not end in ext have no inherit file.
func inheritPath(p, ext string) (string, bool) {
	stem, ok := strings.CutSuffix(p, ext)
	if !ok {
		return "", false
	}

	return stem + "+" + ext, true
}

// cleanPath converts a logical path into a name accepted by fs.FS.
func cleanPath(p string) (string, error) {
	name := path.Clean(filepath.ToSlash(p))

	if !fs.ValidPath(name) || name == "." {
		return "", lang.ErrRead.With(
			slog.String("reason", "invalid path"),
			slog.String("path", p),
		)
	}

	return name, nil
}
