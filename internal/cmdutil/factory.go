// Package cmdutil provides shared dependencies and error types for CLI
// commands.
package cmdutil

import (
	"sync"

	"github.com/schmitthub/fcgen/internal/config"
	"github.com/schmitthub/fcgen/internal/iostreams"
)

// Factory provides shared dependencies for CLI commands.
// It is a dependency injection container: commands extract only the
// fields they need into per-command Options structs. Closure fields use
// lazy initialization so commands that never touch settings don't pay
// for loading them.
type Factory struct {
	// Version info (set at build time via ldflags)
	Version string
	Commit  string

	// Debug reflects the persistent --debug flag (set before RunE fires)
	Debug bool

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	// Settings loads user settings, cached after the first call
	Settings func() (*config.Settings, error)

	// CacheDir resolves the download cache directory
	CacheDir func() (string, error)
}

// New creates a Factory wired to the real environment.
func New(version, commit string) *Factory {
	f := &Factory{
		Version:   version,
		Commit:    commit,
		IOStreams: iostreams.System(),
		CacheDir:  config.CacheDir,
	}

	var (
		once     sync.Once
		settings *config.Settings
		loadErr  error
	)
	f.Settings = func() (*config.Settings, error) {
		once.Do(func() {
			loader, err := config.NewSettingsLoader()
			if err != nil {
				loadErr = err
				return
			}
			settings, loadErr = loader.Load()
		})
		return settings, loadErr
	}

	return f
}
