// Package resolve locates dfprop documents by logical path and merges the
// environment and inherit files that override them.
//
// For a logical path "dir/name.dfprop" and environment "dev", the candidate
// files are:
//
//	dir/dev/name.dfprop    env
//	dir/dev/name+.dfprop   env+
//	dir/name.dfprop        base
//	dir/name+.dfprop       base+
//
// Map reads use the env file as the base when it exists, overlaid by env+.
// Otherwise the base file is overlaid by base+ and then env+. Each overlay
// replaces top-level keys of the accumulated map in place. List and string
// reads use the env file, or else the base file, and ignore inherit files.
//
// Missing files are not errors. A read that finds nothing returns an empty
// result, or [ErrNotFound] when the [Resolver] was built with
// [WithNotFoundAsNil]. Any other I/O failure is a [lang.ErrRead].
package resolve
