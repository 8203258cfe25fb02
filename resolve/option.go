package resolve

import (
	"io/fs"

	"github.com/ardnew/dfprop/log"
)

// DefaultExtension is the file extension of dfprop documents.
const DefaultExtension = ".dfprop"

// config holds the immutable settings of a [Resolver].
type config struct {
	fsys                fs.FS
	logger              log.Logger
	root                string
	ext                 string
	checkDuplicateEntry bool
	skipLineSeparator   bool
	notFoundAsNil       bool
}

// Option configures a [Resolver].
type Option func(config) config

// WithFS sets the file system that documents are read from.
// It takes precedence over [WithRoot].
func WithFS(fsys fs.FS) Option {
	return func(c config) config {
		c.fsys = fsys

		return c
	}
}

// WithRoot sets the directory that logical paths are relative to.
// The default is the current working directory.
func WithRoot(dir string) Option {
	return func(c config) config {
		c.root = dir

		return c
	}
}

// WithExtension sets the document file extension, including the leading dot.
// An empty extension selects [DefaultExtension].
func WithExtension(ext string) Option {
	return func(c config) config {
		c.ext = ext

		return c
	}
}

// WithCheckDuplicateEntry makes a repeated key within one map fatal.
func WithCheckDuplicateEntry(check bool) Option {
	return func(c config) config {
		c.checkDuplicateEntry = check

		return c
	}
}

// WithSkipLineSeparator removes line separators from documents before
// parsing.
func WithSkipLineSeparator(skip bool) Option {
	return func(c config) config {
		c.skipLineSeparator = skip

		return c
	}
}

// WithNotFoundAsNil makes reads that find no file return [ErrNotFound]
// instead of an empty result.
func WithNotFoundAsNil(enable bool) Option {
	return func(c config) config {
		c.notFoundAsNil = enable

		return c
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
