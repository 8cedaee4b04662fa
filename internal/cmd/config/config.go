package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schmitthub/fcgen/internal/cmdutil"
	internalconfig "github.com/schmitthub/fcgen/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig(f *cmdutil.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  `Commands for inspecting and initializing fcgen settings.`,
	}

	cmd.AddCommand(newCmdView(f))
	cmd.AddCommand(newCmdInit(f))

	return cmd
}

func newCmdView(f *cmdutil.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the effective settings",
		Long: `Prints the settings fcgen would use, merging the settings file with
built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(f)
		},
	}
}

func runView(f *cmdutil.Factory) error {
	settings, err := f.Settings()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to render settings: %w", err)
	}

	_, err = f.IOStreams.Out.Write(data)
	return err
}

func newCmdInit(f *cmdutil.Factory) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(f, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")

	return cmd
}

func runInit(f *cmdutil.Factory, force bool) error {
	ios := f.IOStreams

	loader, err := internalconfig.NewSettingsLoader()
	if err != nil {
		return err
	}

	if loader.Exists() && !force {
		cmdutil.PrintError(ios, "Settings file already exists at %s", loader.Path())
		cmdutil.PrintNextSteps(ios,
			"Run 'fcgen config view' to inspect it",
			"Rerun with --force to overwrite it",
		)
		return cmdutil.SilentError
	}

	if err := loader.Save(internalconfig.DefaultSettings()); err != nil {
		cmdutil.PrintError(ios, "Failed to write settings file")
		return err
	}

	cmdutil.PrintSuccess(ios, "Wrote %s", loader.Path())
	return nil
}
