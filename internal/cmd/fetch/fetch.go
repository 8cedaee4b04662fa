package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/schmitthub/fcgen/internal/cmdutil"
	"github.com/schmitthub/fcgen/internal/config"
	srcfetch "github.com/schmitthub/fcgen/internal/fetch"
	"github.com/schmitthub/fcgen/internal/logger"
	"github.com/schmitthub/fcgen/internal/signals"
)

// FetchOptions contains the options for the fetch command.
type FetchOptions struct {
	Timeout time.Duration
}

// NewCmdFetch creates the "fetch" subcommand. It performs only the
// download step: the source file is stored in the cache directory where
// a later "generate --skip-fetch" can pick it up.
func NewCmdFetch(f *cmdutil.Factory) *cobra.Command {
	opts := &FetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download metrics.rs into the cache",
		Long: `Downloads the Firecracker metrics source file and stores it in the
cache directory along with its digest.

The cached copy is used by 'fcgen generate --skip-fetch'.`,
		Example: `  # Download from the Firecracker repository
  fcgen fetch https://raw.githubusercontent.com/firecracker-microvm/firecracker/main/src/vmm/src/logger/metrics.rs`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cmdutil.FlagErrorf("expected exactly one URL argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(f, opts, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Download timeout (default from settings)")

	return cmd
}

func runFetch(f *cmdutil.Factory, opts *FetchOptions, url string) error {
	ctx, cancel := signals.SetupSignalContext(context.Background())
	defer cancel()
	ios := f.IOStreams

	timeout := opts.Timeout
	if timeout == 0 {
		settings, err := f.Settings()
		if err != nil {
			return err
		}
		timeout = settings.Fetch.Timeout
	}

	logger.Debug().
		Str("url", url).
		Dur("timeout", timeout).
		Msg("starting fetch")

	client := srcfetch.NewHTTPClient(srcfetch.WithTimeout(timeout))
	data, err := client.Fetch(ctx, url)
	if err != nil {
		cmdutil.PrintError(ios, "Failed to download %s", url)
		cmdutil.PrintNextSteps(ios,
			"Check the URL points at a raw metrics.rs file",
			"Retry with --timeout to allow a slower download",
		)
		return err
	}

	cacheDir, err := f.CacheDir()
	if err != nil {
		return err
	}
	if err := config.EnsureDir(cacheDir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := srcfetch.NewCache(cacheDir)
	dgst, err := cache.Store(data)
	if err != nil {
		cmdutil.PrintError(ios, "Failed to write cache")
		return err
	}

	cmdutil.PrintSuccess(ios, "Downloaded %s", url)
	fmt.Fprintf(ios.Out, "Path:   %s\n", cache.SourcePath())
	fmt.Fprintf(ios.Out, "Size:   %s\n", units.HumanSize(float64(len(data))))
	fmt.Fprintf(ios.Out, "Digest: %s\n", dgst)

	return nil
}
