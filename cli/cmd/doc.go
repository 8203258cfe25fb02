// Package cmd implements the dfprop subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// ExtIdentifier is the kong variable identifier containing the default
	// document file extension.
	ExtIdentifier = "ext"
)
