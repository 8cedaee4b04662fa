// Package iostreams provides access to standard input/output/error
// streams with TTY detection and color support. It follows the GitHub
// CLI pattern for testable I/O.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// isInputTTY caches whether stdin is a terminal.
	// -1 = unchecked, 0 = false, 1 = true
	isInputTTY int

	// isOutputTTY caches whether stdout is a terminal.
	isOutputTTY int

	// isStderrTTY caches whether stderr is a terminal.
	isStderrTTY int

	// colorEnabled controls color output.
	// -1 = auto (detect from TTY), 0 = disabled, 1 = enabled
	colorEnabled int
}

// System creates an IOStreams connected to the standard streams.
func System() *IOStreams {
	ios := &IOStreams{
		In:           os.Stdin,
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		isInputTTY:   -1,
		isOutputTTY:  -1,
		isStderrTTY:  -1,
		colorEnabled: -1,
	}

	// NO_COLOR is a standard convention (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		ios.colorEnabled = 0
	}

	return ios
}

// Test creates an IOStreams backed by buffers for tests.
// Non-interactive, colors disabled.
func Test() (ios *IOStreams, in, out, errOut *bytes.Buffer) {
	in = &bytes.Buffer{}
	out = &bytes.Buffer{}
	errOut = &bytes.Buffer{}
	ios = &IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}
	return ios, in, out, errOut
}

// IsInputTTY returns true if stdin is a terminal.
func (s *IOStreams) IsInputTTY() bool {
	if s.isInputTTY == -1 {
		if f, ok := s.In.(*os.File); ok {
			s.isInputTTY = boolToInt(term.IsTerminal(int(f.Fd())))
		} else {
			s.isInputTTY = 0
		}
	}
	return s.isInputTTY == 1
}

// IsOutputTTY returns true if stdout is a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	if s.isOutputTTY == -1 {
		if f, ok := s.Out.(*os.File); ok {
			s.isOutputTTY = boolToInt(term.IsTerminal(int(f.Fd())))
		} else {
			s.isOutputTTY = 0
		}
	}
	return s.isOutputTTY == 1
}

// IsStderrTTY returns true if stderr is a terminal.
func (s *IOStreams) IsStderrTTY() bool {
	if s.isStderrTTY == -1 {
		if f, ok := s.ErrOut.(*os.File); ok {
			s.isStderrTTY = boolToInt(term.IsTerminal(int(f.Fd())))
		} else {
			s.isStderrTTY = 0
		}
	}
	return s.isStderrTTY == 1
}

// SetStderrTTY overrides stderr TTY detection, used in tests.
func (s *IOStreams) SetStderrTTY(isTTY bool) {
	s.isStderrTTY = boolToInt(isTTY)
}

// IsInteractive returns true if both stdin and stdout are terminals.
func (s *IOStreams) IsInteractive() bool {
	return s.IsInputTTY() && s.IsOutputTTY()
}

// ColorEnabled returns whether color output is enabled.
func (s *IOStreams) ColorEnabled() bool {
	if s.colorEnabled == -1 {
		return s.IsOutputTTY()
	}
	return s.colorEnabled == 1
}

// SetColorEnabled explicitly enables or disables color output.
func (s *IOStreams) SetColorEnabled(enabled bool) {
	s.colorEnabled = boolToInt(enabled)
}

// ColorScheme returns a ColorScheme matching the stream's color setting.
func (s *IOStreams) ColorScheme() *ColorScheme {
	return NewColorScheme(s.ColorEnabled())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
