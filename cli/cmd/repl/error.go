package repl

import "github.com/ardnew/dfprop/lang"

// Sentinel errors.
var (
	ErrOutOfBounds = lang.NewError("history index out of range")
	ErrNoLoader    = lang.NewError("no document loader")
)
