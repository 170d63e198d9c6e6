// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
//
// This file contains the rendering logic: the main frame composition
// (header, transcript, input area, status bar, sidebar), the model
// picker and help overlays, and the toast overlay merge.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat interface.
// Layout: header (3 lines) + transcript (viewport) + input (3 lines) +
// status bar (1 line), with the sidebar joined on the left in medium
// and wide layouts. Overlays replace or cover the base frame.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.focus == FocusPicker {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.picker.View(),
		)
	}
	if m.focus == FocusHelp {
		return m.renderHelpOverlay()
	}

	mainWidth := m.viewport.Width

	column := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(mainWidth),
		m.viewport.View(),
		m.renderInputArea(mainWidth),
	)

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), column)
	} else {
		body = column
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		m.statusBar.View(),
	)

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.GetToasts(), 0, 0)
		return m.overlayToasts(base, stack)
	}

	return base
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the conversation title and the selected model.
func (m Model) renderHeader(width int) string {
	title := m.activeTitle
	if title == "" {
		title = "parley"
	}

	subtitle := m.theme.HeaderSubtitle.Render(model.ModelDisplayName(m.activeModel))

	return m.theme.Header.
		Width(width - 2).
		Render(m.theme.HeaderTitle.Render(title) + "  " + subtitle)
}

// =============================================================================
// INPUT AREA
// =============================================================================

// renderInputArea renders the text input, or the waiting indicator
// while an exchange is in flight. The input is disabled while waiting;
// one exchange at a time.
func (m Model) renderInputArea(width int) string {
	container := m.theme.InputContainer.Width(width)

	if m.state == StateWaiting {
		line := m.spinner.View()
		if line == "" {
			line = m.theme.InputDisabled.Render("Waiting for reply...")
		}
		hint := m.theme.ShortcutDesc.Render("  esc to cancel")
		return container.Render(line + hint)
	}

	if m.focus == FocusSidebar {
		return container.Render(m.theme.InputDisabled.Render("Browsing conversations (esc to return)"))
	}

	return container.Render(m.input.View())
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpGroupTitles label the groups returned by KeyMap.FullHelp, in
// the same order.
var helpGroupTitles = []string{"Navigation", "Conversation", "Actions", "Meta"}

// renderHelpOverlay renders a centered keyboard reference.
func (m Model) renderHelpOverlay() string {
	var sb strings.Builder
	sb.WriteString(m.theme.PickerTitle.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	for i, group := range m.keyMap.FullHelp() {
		if i < len(helpGroupTitles) {
			sb.WriteString(m.theme.SidebarHeader.Render(helpGroupTitles[i]))
			sb.WriteString("\n")
		}
		for _, binding := range group {
			help := binding.Help()
			sb.WriteString("  ")
			sb.WriteString(m.theme.ShortcutKey.Render(util.PadRight(help.Key, 10)))
			sb.WriteString(" ")
			sb.WriteString(m.theme.ShortcutDesc.Render(help.Desc))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.theme.ShortcutDesc.Render("esc to close"))

	box := m.theme.PickerBox.Render(sb.String())
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// TOAST OVERLAY
// =============================================================================

// overlayToasts merges the toast stack onto the base frame. Toasts sit
// in the bottom-right corner above the status bar, without reflowing
// the content underneath.
func (m Model) overlayToasts(baseView, toastView string) string {
	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(toastView, "\n")

	startRow := len(baseLines) - len(toastLines) - statusHeight - 1
	if startRow < 0 {
		startRow = 0
	}

	result := make([]string, len(baseLines))
	for i, baseLine := range baseLines {
		toastIdx := i - startRow
		if toastIdx >= 0 && toastIdx < len(toastLines) && lipgloss.Width(toastLines[toastIdx]) > 0 {
			toastLine := toastLines[toastIdx]
			pad := m.width - lipgloss.Width(toastLine) - 2
			if gap := pad - lipgloss.Width(baseLine); gap > 0 {
				baseLine += strings.Repeat(" ", gap)
			}
			// Truncation of the covered region is acceptable; toasts
			// are transient.
			result[i] = truncateToWidth(baseLine, pad) + toastLine
		} else {
			result[i] = baseLine
		}
	}
	return strings.Join(result, "\n")
}

// truncateToWidth cuts a rendered line to at most width display cells.
// ANSI sequences pass through untouched so truncation may leave open
// styles; lipgloss resets per segment, which keeps this safe for the
// lines we compose.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}

	var sb strings.Builder
	cells := 0
	inEscape := false
	for _, r := range s {
		if inEscape {
			sb.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			sb.WriteRune(r)
			inEscape = true
			continue
		}
		if cells >= width {
			break
		}
		sb.WriteRune(r)
		cells++
	}
	return sb.String()
}
