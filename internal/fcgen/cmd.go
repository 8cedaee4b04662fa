// Package fcgen wires the CLI together and owns process exit codes.
package fcgen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/schmitthub/fcgen/internal/cmd/root"
	"github.com/schmitthub/fcgen/internal/cmdutil"
	"github.com/schmitthub/fcgen/internal/config"
	"github.com/schmitthub/fcgen/internal/iostreams"
	"github.com/schmitthub/fcgen/internal/logger"
	"github.com/schmitthub/fcgen/internal/update"
)

// Build-time variables injected via ldflags
var (
	Version = "dev"
	Commit  = "none"
)

const (
	exitOk    = 0
	exitError = 1
	exitUsage = 2
)

// updateRepo is the GitHub repository checked for new releases.
const updateRepo = "schmitthub/fcgen"

// Main is the entry point for the fcgen CLI.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := cmdutil.New(Version, Commit)
	rootCmd := root.NewCmdRoot(f, Version, Commit)

	// Kick off the release check while the command runs; the result is
	// only reported after a successful command, on a TTY. The goroutine
	// gets its own logger value captured here; the global is reassigned
	// once flags are parsed and must not be read concurrently.
	logger.Init(false)
	updateLog := logger.Log
	updateCtx, cancelUpdate := context.WithCancel(context.Background())
	defer cancelUpdate()
	updateCh := make(chan *update.Result, 1)
	go func() {
		updateCh <- checkForUpdate(updateCtx, f.Version, updateLog)
	}()

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		var flagErr *cmdutil.FlagError
		switch {
		case errors.Is(err, cmdutil.SilentError):
			return exitError
		case errors.As(err, &flagErr):
			cmdutil.PrintError(f.IOStreams, "%s", err)
			fmt.Fprint(f.IOStreams.ErrOut, "\n"+cmd.UsageString())
			return exitUsage
		default:
			cmdutil.PrintError(f.IOStreams, "%s", err)
			cmdutil.PrintHelpHint(f.IOStreams, cmd.CommandPath())
			return exitError
		}
	}

	select {
	case res := <-updateCh:
		printUpdateNotification(f.IOStreams, res)
	case <-time.After(100 * time.Millisecond):
		// The check lost the race; skip the notice.
	}

	return exitOk
}

// checkForUpdate runs the release check and swallows failures; a broken
// update check must never affect the command outcome. It logs through
// the caller-captured logger so it never touches the global one.
func checkForUpdate(ctx context.Context, version string, log zerolog.Logger) *update.Result {
	var statePath string
	if home, err := config.Home(); err == nil {
		statePath = filepath.Join(home, "state.yml")
	}

	checker := &update.Checker{Repo: updateRepo, StatePath: statePath}
	res, err := checker.Check(ctx, version)
	if err != nil {
		log.Debug().Err(err).Msg("update check failed")
		return nil
	}
	return res
}

// printUpdateNotification announces a newer release on stderr TTYs.
func printUpdateNotification(ios *iostreams.IOStreams, res *update.Result) {
	if res == nil || !ios.IsStderrTTY() {
		return
	}
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "\n%s %s → %s\n%s\n",
		cs.Yellow("A new release of fcgen is available:"),
		cs.Cyan(res.CurrentVersion),
		cs.Cyan(res.LatestVersion),
		cs.Muted(res.ReleaseURL),
	)
}
