package resolve

import "github.com/ardnew/dfprop/lang"

// ErrNotFound is returned when no candidate file exists and the resolver was
// configured with [WithNotFoundAsNil].
var ErrNotFound = lang.NewError("document not found")
