package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schmitthub/fcgen/internal/cmdutil"
	internalconfig "github.com/schmitthub/fcgen/internal/config"
	"github.com/schmitthub/fcgen/internal/iostreams"
	"github.com/schmitthub/fcgen/internal/logger"
)

func init() {
	logger.Log = zerolog.Nop()
}

func testFactory(t *testing.T) *cmdutil.Factory {
	t.Helper()
	t.Setenv(internalconfig.HomeEnv, t.TempDir())
	return cmdutil.New("1.0.0", "abc123")
}

func TestNewCmdConfig(t *testing.T) {
	f := testFactory(t)
	cmd := NewCmdConfig(f)

	if cmd.Use != "config" {
		t.Errorf("expected Use 'config', got '%s'", cmd.Use)
	}

	expectedCmds := map[string]bool{"view": false, "init": false}
	for _, sub := range cmd.Commands() {
		if _, ok := expectedCmds[sub.Name()]; ok {
			expectedCmds[sub.Name()] = true
		}
	}
	for name, found := range expectedCmds {
		if !found {
			t.Errorf("expected subcommand '%s' to be registered", name)
		}
	}
}

func TestRunViewDefaults(t *testing.T) {
	f := testFactory(t)
	ios, _, out, _ := iostreams.Test()
	f.IOStreams = ios

	if err := runView(f); err != nil {
		t.Fatalf("runView: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"package: virtcontainers",
		"namespace: kata_firecracker",
		"root_struct: FirecrackerMetrics",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("view output missing %q:\n%s", want, got)
		}
	}
}

func TestRunInitWritesSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv(internalconfig.HomeEnv, home)
	f := cmdutil.New("1.0.0", "abc123")
	ios, _, _, _ := iostreams.Test()
	f.IOStreams = ios

	if err := runInit(f, false); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	path := filepath.Join(home, internalconfig.SettingsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected settings file: %v", err)
	}
	if !strings.Contains(string(data), "kata_firecracker") {
		t.Error("settings file missing default namespace")
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	home := t.TempDir()
	t.Setenv(internalconfig.HomeEnv, home)
	f := cmdutil.New("1.0.0", "abc123")
	ios, _, _, _ := iostreams.Test()
	f.IOStreams = ios

	if err := runInit(f, false); err != nil {
		t.Fatalf("first runInit: %v", err)
	}
	err := runInit(f, false)
	if !errors.Is(err, cmdutil.SilentError) {
		t.Errorf("expected SilentError on existing file, got %v", err)
	}

	if err := runInit(f, true); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}
}
