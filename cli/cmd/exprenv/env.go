// Package exprenv builds the expr-lang environment in which dfprop
// expressions are evaluated.
//
// An environment holds the entries of a resolved document as top-level
// names, layered over a set of builtins. Document entries shadow builtins of
// the same name.
package exprenv

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/dfprop/lang"
)

//nolint:gochecknoglobals
var builtins = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"platform": getPlatform(),
		"hostname": getHostname(),
		"shell":    os.Getenv("SHELL"),

		"cwd": getCwd,
		"env": os.Getenv,

		"file": map[string]any{
			"exists":    fileExists,
			"isDir":     fileIsDir,
			"isRegular": fileIsRegular,
		},

		"path": map[string]any{
			"abs": pathAbs,
			"cat": pathCat,
			"rel": pathRel,
		},

		// PATH-like list edits.
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

// Builtins returns a copy of the builtin environment.
func Builtins() map[string]any { return maps.Clone(builtins()) }

// Make returns an environment holding the entries of m over the builtins.
func Make(m *lang.Map) map[string]any {
	env := Builtins()

	for k, v := range m.All() {
		env[k] = v.Native()
	}

	return env
}

// Lookup returns the sorted names found at the dot-separated path in env.
// An empty path lists the top-level names. Nil is returned if path does not
// name a map.
func Lookup(env map[string]any, path string) []string {
	var current any = env

	if path != "" {
		for seg := range strings.SplitSeq(path, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				return nil
			}

			if current, ok = m[seg]; !ok {
				return nil
			}
		}
	}

	if m, ok := current.(map[string]any); ok {
		return slices.Sorted(maps.Keys(m))
	}

	return nil
}

// target names an operating system and architecture.
type target struct {
	OS   string
	Arch string
}

// getPlatform returns the host target using Go conventions, honoring the
// GOHOSTOS/GOOS and GOHOSTARCH/GOARCH overrides.
func getPlatform() target {
	pick := func(fallback string, keys ...string) string {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok {
				return v
			}
		}

		return fallback
	}

	return target{
		OS:   pick(runtime.GOOS, "GOHOSTOS", "GOOS"),
		Arch: pick(runtime.GOARCH, "GOHOSTARCH", "GOARCH"),
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}

func pathCat(elem ...string) string {
	return filepath.Join(elem...)
}

func pathRel(from, to string) string {
	p, err := filepath.Rel(pathAbs(from), pathAbs(to))
	if err != nil {
		return pathCat(from, to)
	}

	return p
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
