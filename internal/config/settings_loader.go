package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "settings.yaml"
)

// SettingsLoader handles loading and saving of user settings.
type SettingsLoader struct {
	path  string
	viper *viper.Viper
}

// NewSettingsLoader creates a new SettingsLoader.
// It resolves the settings path from FCGEN_HOME or the default location.
func NewSettingsLoader() (*SettingsLoader, error) {
	home, err := Home()
	if err != nil {
		return nil, fmt.Errorf("failed to determine fcgen home: %w", err)
	}
	return NewSettingsLoaderAt(filepath.Join(home, SettingsFileName)), nil
}

// NewSettingsLoaderAt creates a SettingsLoader for an explicit file path.
func NewSettingsLoaderAt(path string) *SettingsLoader {
	return &SettingsLoader{
		path:  path,
		viper: viper.New(),
	}
}

// Path returns the full path to the settings file.
func (l *SettingsLoader) Path() string {
	return l.path
}

// Exists checks if the settings file exists.
func (l *SettingsLoader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Load reads and parses the settings file.
// If the file doesn't exist, returns default settings (not an error).
func (l *SettingsLoader) Load() (*Settings, error) {
	defaults := DefaultSettings()

	l.viper.SetConfigFile(l.path)
	l.viper.SetConfigType("yaml")

	l.viper.SetDefault("generate.package", defaults.Generate.Package)
	l.viper.SetDefault("generate.namespace", defaults.Generate.Namespace)
	l.viper.SetDefault("generate.root_struct", defaults.Generate.RootStruct)
	l.viper.SetDefault("generate.type_overrides", defaults.Generate.TypeOverrides)
	l.viper.SetDefault("fetch.timeout", defaults.Fetch.Timeout)

	if l.Exists() {
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := l.viper.Unmarshal(&settings, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return &settings, nil
}
