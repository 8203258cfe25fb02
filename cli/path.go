package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/dfprop/pkg"
	"github.com/ardnew/dfprop/resolve"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// defaultDirMode is the default permission mode for created directories.
//
//nolint:gochecknoglobals
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// configFile returns the path of the dfprop configuration file.
func configFile() string {
	return configPath(baseConfig + resolve.DefaultExtension)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
