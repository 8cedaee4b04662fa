package iostreams

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles for terminal output. Adaptive colors pick a readable
// variant on both light and dark backgrounds.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}).Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "6", Dark: "14"})
)

// ColorScheme provides terminal color formatting.
// When colors are disabled, methods return the input string unmodified.
type ColorScheme struct {
	enabled bool
}

// NewColorScheme creates a new ColorScheme.
// If enabled is false, all color methods return unmodified strings.
func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

// Enabled returns whether colors are enabled.
func (cs *ColorScheme) Enabled() bool {
	return cs.enabled
}

// render applies a lipgloss style if colors are enabled.
func (cs *ColorScheme) render(style lipgloss.Style, s string) string {
	if !cs.enabled {
		return s
	}
	return style.Render(s)
}

// Red returns the string in red (error color).
func (cs *ColorScheme) Red(s string) string {
	return cs.render(errorStyle, s)
}

// Redf returns a formatted string in red.
func (cs *ColorScheme) Redf(format string, a ...any) string {
	return cs.Red(fmt.Sprintf(format, a...))
}

// Yellow returns the string in yellow (warning color).
func (cs *ColorScheme) Yellow(s string) string {
	return cs.render(warningStyle, s)
}

// Green returns the string in green (success color).
func (cs *ColorScheme) Green(s string) string {
	return cs.render(successStyle, s)
}

// Cyan returns the string in cyan (accent color).
func (cs *ColorScheme) Cyan(s string) string {
	return cs.render(cyanStyle, s)
}

// Muted returns the string dimmed.
func (cs *ColorScheme) Muted(s string) string {
	return cs.render(mutedStyle, s)
}

// Bold returns the string in bold.
func (cs *ColorScheme) Bold(s string) string {
	return cs.render(boldStyle, s)
}

// SuccessIcon returns a green check mark.
func (cs *ColorScheme) SuccessIcon() string {
	return cs.Green("✓")
}

// WarningIcon returns a yellow exclamation mark.
func (cs *ColorScheme) WarningIcon() string {
	return cs.Yellow("!")
}

// FailureIcon returns a red cross.
func (cs *ColorScheme) FailureIcon() string {
	return cs.Red("✗")
}
