package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// DefaultRelativeOutput is the destination path for the generated file,
// relative to the runtime workspace root.
const DefaultRelativeOutput = "virtcontainers/fc_metrics.go"

// Settings holds user-level configuration loaded from settings.yaml.
type Settings struct {
	Source   SourceSettings   `yaml:"source" mapstructure:"source"`
	Generate GenerateSettings `yaml:"generate" mapstructure:"generate"`
	Output   OutputSettings   `yaml:"output" mapstructure:"output"`
	Fetch    FetchSettings    `yaml:"fetch" mapstructure:"fetch"`
	Logging  LoggingSettings  `yaml:"logging" mapstructure:"logging"`
}

// SourceSettings describes how git sources are fetched when the command
// line doesn't say otherwise.
type SourceSettings struct {
	// Ref is the default git ref for git sources; empty means the
	// remote HEAD
	Ref string `yaml:"ref,omitempty" mapstructure:"ref"`
	// RepoPath is the in-repo path of metrics.rs for git sources
	RepoPath string `yaml:"repo_path,omitempty" mapstructure:"repo_path"`
}

// GenerateSettings are the code generation parameters.
type GenerateSettings struct {
	Package    string `yaml:"package" mapstructure:"package"`
	Namespace  string `yaml:"namespace" mapstructure:"namespace"`
	RootStruct string `yaml:"root_struct" mapstructure:"root_struct"`
	// TypeOverrides maps Rust field types to Go types in the emitted
	// structs. SharedMetric -> uint64 matches the upstream wrapper types.
	TypeOverrides map[string]string `yaml:"type_overrides,omitempty" mapstructure:"type_overrides"`
}

// OutputSettings control where the generated file lands.
type OutputSettings struct {
	// Path overrides destination resolution entirely when set
	Path string `yaml:"path,omitempty" mapstructure:"path"`
}

// FetchSettings control source downloads.
type FetchSettings struct {
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LoggingSettings configure optional file logging.
type LoggingSettings struct {
	FileEnabled *bool `yaml:"file_enabled,omitempty" mapstructure:"file_enabled"`
	MaxSizeMB   int   `yaml:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	MaxAgeDays  int   `yaml:"max_age_days,omitempty" mapstructure:"max_age_days"`
	MaxBackups  int   `yaml:"max_backups,omitempty" mapstructure:"max_backups"`
}

// DefaultSettings returns settings with the upstream generator's defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Generate: GenerateSettings{
			Package:    "virtcontainers",
			Namespace:  "kata_firecracker",
			RootStruct: "FirecrackerMetrics",
			TypeOverrides: map[string]string{
				"SharedMetric": "uint64",
			},
		},
		Fetch: FetchSettings{
			Timeout: 30 * time.Second,
		},
	}
}

// ErrNoDestination is returned when no destination can be resolved.
var ErrNoDestination = errors.New("no destination: set --output, output.path in settings, or " + RuntimeRootEnv)

// ResolveOutputPath determines the destination file for the generated
// source. Precedence: explicit flag > settings override > runtime root
// env joined with the fixed relative path.
func (s *Settings) ResolveOutputPath(flagOverride string) (string, error) {
	if flagOverride != "" {
		return flagOverride, nil
	}
	if s.Output.Path != "" {
		return s.Output.Path, nil
	}
	if root := os.Getenv(RuntimeRootEnv); root != "" {
		return filepath.Join(root, DefaultRelativeOutput), nil
	}
	return "", ErrNoDestination
}
