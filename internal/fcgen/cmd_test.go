package fcgen

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schmitthub/fcgen/internal/iostreams"
	"github.com/schmitthub/fcgen/internal/logger"
	"github.com/schmitthub/fcgen/internal/update"
)

func init() {
	logger.Log = zerolog.Nop()
}

func TestPrintUpdateNotification_NilResult(t *testing.T) {
	ios, _, _, errOut := iostreams.Test()
	ios.SetStderrTTY(true)

	printUpdateNotification(ios, nil)

	if errOut.String() != "" {
		t.Errorf("expected no output for nil result, got %q", errOut.String())
	}
}

func TestPrintUpdateNotification_NonTTY(t *testing.T) {
	ios, _, _, errOut := iostreams.Test()

	printUpdateNotification(ios, &update.Result{
		CurrentVersion: "1.0.0",
		LatestVersion:  "2.0.0",
		ReleaseURL:     "https://github.com/schmitthub/fcgen/releases/tag/v2.0.0",
	})

	if errOut.String() != "" {
		t.Errorf("expected no output for non-TTY stderr, got %q", errOut.String())
	}
}

func TestPrintUpdateNotification_TTYWithResult(t *testing.T) {
	ios, _, _, errOut := iostreams.Test()
	ios.SetStderrTTY(true)

	printUpdateNotification(ios, &update.Result{
		CurrentVersion: "1.0.0",
		LatestVersion:  "2.0.0",
		ReleaseURL:     "https://github.com/schmitthub/fcgen/releases/tag/v2.0.0",
	})

	output := errOut.String()
	if output == "" {
		t.Fatal("expected notification output on TTY stderr, got empty")
	}
	for _, want := range []string{
		"A new release of fcgen is available:",
		"1.0.0",
		"2.0.0",
		"https://github.com/schmitthub/fcgen/releases/tag/v2.0.0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got %q", want, output)
		}
	}
}

func TestCheckForUpdateDevBuild(t *testing.T) {
	t.Setenv("FCGEN_NO_UPDATE_NOTIFIER", "")
	t.Setenv("CI", "")

	if res := checkForUpdate(t.Context(), "dev", zerolog.Nop()); res != nil {
		t.Errorf("expected nil result for dev build, got %+v", res)
	}
}
