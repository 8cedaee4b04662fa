package version

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schmitthub/fcgen/internal/cmdutil"
)

// NewCmdVersion creates the "version" subcommand.
func NewCmdVersion(f *cmdutil.Factory, version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of fcgen",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(f.IOStreams.Out, cmd.Root().Annotations["versionInfo"])
		},
	}

	return cmd
}

// Format returns the version string for display.
func Format(version, commit string) string {
	version = strings.TrimPrefix(version, "v")

	var commitStr string
	if commit != "" {
		commitStr = fmt.Sprintf(" (%s)", commit)
	}

	return fmt.Sprintf("fcgen version %s%s\n", version, commitStr)
}
