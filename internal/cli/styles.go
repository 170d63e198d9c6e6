// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for CLI output.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

func init() {
	// Resolve the color profile once so piped output stays plain.
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle renders command titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// SectionStyle renders section headers.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.TextPrimary)

	// LabelStyle renders field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// ValueStyle renders field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// SuccessStyle renders success markers.
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Emerald)

	// ErrorStyle renders error markers.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Rose)

	// WarningStyle renders warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// DimStyle renders de-emphasized text.
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// HighlightStyle renders emphasized inline text.
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// SeparatorStyle renders horizontal rules.
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayDim)
)

// RenderSeparator returns a horizontal rule of the given width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	return SeparatorStyle.Render(strings.Repeat("-", width))
}

// RenderStatus renders an [OK]/[FAIL] marker followed by a message.
func RenderStatus(ok bool, message string) string {
	if ok {
		return SuccessStyle.Render("[OK]") + " " + message
	}
	return ErrorStyle.Render("[FAIL]") + " " + message
}

// RenderLabel renders a "label: value" pair with shared styling.
func RenderLabel(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}
