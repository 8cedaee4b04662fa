package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	configcmd "github.com/schmitthub/fcgen/internal/cmd/config"
	fetchcmd "github.com/schmitthub/fcgen/internal/cmd/fetch"
	"github.com/schmitthub/fcgen/internal/cmd/generate"
	versioncmd "github.com/schmitthub/fcgen/internal/cmd/version"
	"github.com/schmitthub/fcgen/internal/cmdutil"
	internalconfig "github.com/schmitthub/fcgen/internal/config"
	"github.com/schmitthub/fcgen/internal/logger"
)

// NewCmdRoot creates the root command for the fcgen CLI.
func NewCmdRoot(f *cmdutil.Factory, version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fcgen <command>",
		Short: "Generate the Kata prometheus adapter from Firecracker's metrics.rs",
		Long: `Fcgen turns Firecracker's metrics.rs into the Go prometheus adapter
used by the Kata runtime.

Quick start:
  fcgen generate <url>   # Fetch metrics.rs and regenerate fc_metrics.go
  fcgen fetch <url>      # Download metrics.rs into the cache only

The destination defaults to $` + internalconfig.RuntimeRootEnv + `/` + internalconfig.DefaultRelativeOutput + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(version, commit),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(f.Debug)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", f.Debug).
				Msg("fcgen starting")

			return nil
		},
		Version: f.Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&f.Debug, "debug", "D", false, "Enable debug logging")

	// Flag parse failures are usage errors, not runtime errors.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if err == pflag.ErrHelp {
			return err
		}
		return cmdutil.FlagErrorWrap(err)
	})

	// Version template; Format already ends with a newline.
	cmd.SetVersionTemplate(versioncmd.Format(version, commit))

	cmd.AddCommand(generate.NewCmdGenerate(f))
	cmd.AddCommand(fetchcmd.NewCmdFetch(f))
	cmd.AddCommand(configcmd.NewCmdConfig(f))
	cmd.AddCommand(versioncmd.NewCmdVersion(f, version, commit))

	return cmd
}

// initializeLogger sets up the logger with file logging if possible.
// Falls back to console-only logging on any errors.
func initializeLogger(debug bool) {
	loader, err := internalconfig.NewSettingsLoader()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to create settings loader")
		return
	}

	settings, err := loader.Load()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load settings")
		return
	}

	logsDir, err := internalconfig.LogsDir()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to get logs directory")
		return
	}

	logCfg := &logger.LoggingConfig{
		FileEnabled: settings.Logging.FileEnabled,
		MaxSizeMB:   settings.Logging.MaxSizeMB,
		MaxAgeDays:  settings.Logging.MaxAgeDays,
		MaxBackups:  settings.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug, logsDir, logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}
