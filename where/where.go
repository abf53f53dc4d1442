// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/archiver-cli/archiver/constant"
	"github.com/archiver-cli/archiver/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "ARCHIVER_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path resolution can be explicitly specified via the ARCHIVER_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Archiver))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Archiver))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Settings resolves the user settings file written on every confirmed change.
func Settings() string {
	return filepath.Join(Config(), "settings.toml")
}

// Queries resolves the absolute path to the collection search history registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// History resolves the file listing recently viewed items.
func History() string {
	return filepath.Join(Cache(), "history.json")
}

// Details resolves the directory of cached item metadata.
func Details() string {
	return ensureDir(filepath.Join(Cache(), "details"))
}

// Temp resolves a volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Archiver))
}
