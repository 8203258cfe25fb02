package cmd

import "github.com/ardnew/dfprop/lang"

// Sentinel errors reported by commands. Each is a [lang.Error], so callers
// attach context with With and Wrap and match with [errors.Is].
var (
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrKeyNotFound = lang.NewError("key not found")
	ErrNotMap      = lang.NewError("key requires a map document")
	ErrFormat      = lang.NewError("invalid output format")
)
