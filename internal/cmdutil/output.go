package cmdutil

import (
	"fmt"

	"github.com/schmitthub/fcgen/internal/iostreams"
)

// PrintError prints a formatted error line to stderr.
func PrintError(ios *iostreams.IOStreams, format string, args ...any) {
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "%s "+format+"\n", append([]any{cs.FailureIcon()}, args...)...)
}

// PrintSuccess prints a formatted success line to stderr.
func PrintSuccess(ios *iostreams.IOStreams, format string, args ...any) {
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "%s "+format+"\n", append([]any{cs.SuccessIcon()}, args...)...)
}

// PrintNextSteps prints a numbered list of follow-up suggestions to stderr.
func PrintNextSteps(ios *iostreams.IOStreams, steps ...string) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintln(ios.ErrOut, "\nNext Steps:")
	for i, step := range steps {
		fmt.Fprintf(ios.ErrOut, "  %d. %s\n", i+1, step)
	}
}

// PrintHelpHint prints a contextual help hint to stderr.
// cmdPath should be cmd.CommandPath() (e.g., "fcgen generate").
func PrintHelpHint(ios *iostreams.IOStreams, cmdPath string) {
	fmt.Fprintf(ios.ErrOut, "\nRun '%s --help' for more information.\n", cmdPath)
}
