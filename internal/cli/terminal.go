// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection and terminal capability helpers.
//
// USABILITY: Plain output when piped, styled output on a real terminal.
package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when the real width cannot be determined.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width wrapping will target.
	MinTerminalWidth = 40
)

// IsTTY reports whether stdin is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStderrTTY reports whether stderr is attached to a terminal.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// CanPrompt reports whether interactive prompting is possible.
// Requires both stdin and stdout to be terminals.
func CanPrompt() bool {
	return IsTTY() && IsStdoutTTY()
}

// TTYRequiredError is returned when a command needs a terminal but none is attached.
type TTYRequiredError struct {
	Command string
}

func (e *TTYRequiredError) Error() string {
	return fmt.Sprintf("%s requires an interactive terminal (stdin is not a TTY)", e.Command)
}

// RequireTTY returns an error when the named command cannot prompt.
func RequireTTY(command string) error {
	if !CanPrompt() {
		return &TTYRequiredError{Command: command}
	}
	return nil
}

// GetTerminalWidth returns the current terminal width in columns.
// Falls back to DefaultTerminalWidth when stdout is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// GetTerminalSize returns the terminal width and height.
func GetTerminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth, 24
	}
	return width, height
}

// WrapText wraps text to the given width at word boundaries.
// Lines longer than the width with no break point are left intact.
func WrapText(text string, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrapLine(line, width))
	}
	return b.String()
}

func wrapLine(line string, width int) string {
	if len(line) <= width {
		return line
	}

	var b strings.Builder
	col := 0
	for _, word := range strings.Fields(line) {
		if col > 0 && col+1+len(word) > width {
			b.WriteString("\n")
			col = 0
		} else if col > 0 {
			b.WriteString(" ")
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}

// =============================================================================
// COLOR SUPPORT
// =============================================================================

var (
	colorsOnce    sync.Once
	colorsEnabled bool
	colorsForced  bool
)

// ColorsEnabled reports whether styled output should be emitted.
// Honors NO_COLOR and FORCE_COLOR and requires a stdout TTY otherwise.
func ColorsEnabled() bool {
	colorsOnce.Do(func() {
		if colorsForced {
			colorsEnabled = true
			return
		}
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}
		colorsEnabled = IsStdoutTTY()
	})
	return colorsEnabled
}

// ForceColorsEnabled overrides color detection. Intended for tests.
func ForceColorsEnabled(enabled bool) {
	colorsForced = enabled
	colorsEnabled = enabled
	colorsOnce = sync.Once{}
}

// GetColorProfile returns the termenv profile to render with.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
