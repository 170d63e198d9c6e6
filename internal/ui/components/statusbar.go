// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for parley.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusWaiting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	ModelID           string // Current model identifier
	ConversationCount int    // Number of conversations in the sidebar
	MessageCount      int    // Messages in the active conversation
	Status            Status // Current status
	Width             int    // Available width
	ShowShortcuts     bool   // Show keyboard shortcuts
	theme             *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		ModelID:       model.DefaultModel,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetModel updates the model identifier shown in the bar.
func (s *StatusBar) SetModel(modelID string) {
	s.ModelID = modelID
}

// SetCounts updates the conversation and message counters.
func (s *StatusBar) SetCounts(conversations, messages int) {
	s.ConversationCount = conversations
	s.MessageCount = messages
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: model icon
func (s *StatusBar) viewNarrow() string {
	modelStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	statusText := s.getStatusStyle().Render(s.Status.Icon())

	result := modelStyle.Render(s.ModelID) + " " + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders the full status bar
// Format: Model | N chats | N msgs | Status    shortcuts
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	modelStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	metaStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	parts := []string{
		modelStyle.Render(model.ModelDisplayName(s.ModelID)),
		metaStyle.Render(strconv.Itoa(s.ConversationCount) + " chats"),
		metaStyle.Render(strconv.Itoa(s.MessageCount) + " msgs"),
		s.getStatusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
	}

	left := strings.Join(parts, separator)

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}

// renderShortcuts renders the keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"^N", "new"},
		{"^K", "chats"},
		{"^P", "model"},
		{"^Q", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, keyStyle.Render(sc.key)+descStyle.Render(" "+sc.desc))
	}

	return strings.Join(parts, "  ")
}

// getStatusStyle returns the style for the current status.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusWaiting:
		return lipgloss.NewStyle().Foreground(styles.Amber)
	default:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast)
	}
}
