package config

import (
	"os"
	"path/filepath"
)

const (
	// HomeEnv is the environment variable for the fcgen home directory
	HomeEnv = "FCGEN_HOME"
	// CacheEnv overrides the download cache directory
	CacheEnv = "FCGEN_CACHE_DIR"
	// RuntimeRootEnv points at the runtime workspace the generated file
	// is written into
	RuntimeRootEnv = "FCGEN_RUNTIME_ROOT"

	// DefaultHomeDir is the default directory name under user home
	DefaultHomeDir = ".fcgen"
	// CacheSubdir is the subdirectory for downloaded sources
	CacheSubdir = "cache"
	// LogsSubdir is the subdirectory for log files
	LogsSubdir = "logs"
)

// Home returns the fcgen home directory.
// It checks the FCGEN_HOME environment variable first, then defaults to ~/.fcgen
func Home() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultHomeDir), nil
}

// CacheDir returns the download cache directory (~/.fcgen/cache).
// FCGEN_CACHE_DIR overrides it.
func CacheDir() (string, error) {
	if dir := os.Getenv(CacheEnv); dir != "" {
		return dir, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, CacheSubdir), nil
}

// LogsDir returns the log file directory (~/.fcgen/logs)
func LogsDir() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogsSubdir), nil
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
