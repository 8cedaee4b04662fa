package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsLoaderMissingFileReturnsDefaults(t *testing.T) {
	l := NewSettingsLoaderAt(filepath.Join(t.TempDir(), "settings.yaml"))

	assert.False(t, l.Exists())

	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "virtcontainers", s.Generate.Package)
	assert.Equal(t, "kata_firecracker", s.Generate.Namespace)
	assert.Equal(t, 30*time.Second, s.Fetch.Timeout)
}

func TestSettingsLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
source:
  ref: v1.4.0
  repo_path: src/vmm/src/metrics.rs
generate:
  namespace: my_firecracker
output:
  path: /tmp/out/fc_metrics.go
fetch:
  timeout: 10s
logging:
  max_size_mb: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l := NewSettingsLoaderAt(path)
	s, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "v1.4.0", s.Source.Ref)
	assert.Equal(t, "src/vmm/src/metrics.rs", s.Source.RepoPath)
	assert.Equal(t, "my_firecracker", s.Generate.Namespace)
	// Unset keys keep their defaults.
	assert.Equal(t, "virtcontainers", s.Generate.Package)
	assert.Equal(t, "FirecrackerMetrics", s.Generate.RootStruct)
	assert.Equal(t, "/tmp/out/fc_metrics.go", s.Output.Path)
	assert.Equal(t, 10*time.Second, s.Fetch.Timeout)
	assert.Equal(t, 25, s.Logging.MaxSizeMB)
}

func TestSettingsLoaderLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generate: [broken"), 0644))

	_, err := NewSettingsLoaderAt(path).Load()
	assert.Error(t, err)
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	l := NewSettingsLoaderAt(path)

	s := DefaultSettings()
	s.Source.Ref = "v1.4.0"
	s.Logging.MaxBackups = 9
	require.NoError(t, l.Save(s))

	loaded, err := NewSettingsLoaderAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", loaded.Source.Ref)
	assert.Equal(t, 9, loaded.Logging.MaxBackups)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "fc_metrics.go")

	require.NoError(t, WriteFile(path, []byte("package virtcontainers\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package virtcontainers\n", string(data))

	// No temp droppings left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
