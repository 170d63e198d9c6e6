// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Conversation list
// =============================================================================

// Sidebar renders the conversation list with an optional title filter.
type Sidebar struct {
	conversations []*model.Conversation
	activeID      string
	cursor        int
	filter        string
	width         int
	height        int
	theme         *styles.Theme

	// UNICODE: case- and accent-insensitive title matching
	matcher *search.Matcher
}

// NewSidebar creates a new conversation sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{
		width:   32,
		height:  24,
		theme:   theme,
		matcher: search.New(language.Und, search.Loose),
	}
}

// SetSize updates the sidebar dimensions.
func (sb *Sidebar) SetSize(width, height int) {
	sb.width = width
	sb.height = height
}

// SetConversations replaces the conversation list.
// The cursor is clamped to the filtered list.
func (sb *Sidebar) SetConversations(conversations []*model.Conversation) {
	sb.conversations = conversations
	sb.clampCursor()
}

// SetActive marks the conversation that is currently open.
func (sb *Sidebar) SetActive(id string) {
	sb.activeID = id
}

// SetFilter sets the title filter text.
func (sb *Sidebar) SetFilter(filter string) {
	sb.filter = filter
	sb.cursor = 0
}

// Filter returns the current filter text.
func (sb *Sidebar) Filter() string {
	return sb.filter
}

// MoveUp moves the selection cursor up.
func (sb *Sidebar) MoveUp() {
	if sb.cursor > 0 {
		sb.cursor--
	}
}

// MoveDown moves the selection cursor down.
func (sb *Sidebar) MoveDown() {
	if sb.cursor < len(sb.Visible())-1 {
		sb.cursor++
	}
}

// Selected returns the conversation currently under the cursor, or nil.
func (sb *Sidebar) Selected() *model.Conversation {
	visible := sb.Visible()
	if sb.cursor < 0 || sb.cursor >= len(visible) {
		return nil
	}
	return visible[sb.cursor]
}

// Visible returns the conversations that pass the filter, in list order.
func (sb *Sidebar) Visible() []*model.Conversation {
	if sb.filter == "" {
		return sb.conversations
	}

	var matched []*model.Conversation
	for _, conv := range sb.conversations {
		if start, _ := sb.matcher.IndexString(conv.Title, sb.filter); start >= 0 {
			matched = append(matched, conv)
		}
	}
	return matched
}

// clampCursor keeps the cursor inside the filtered list bounds.
func (sb *Sidebar) clampCursor() {
	n := len(sb.Visible())
	if n == 0 {
		sb.cursor = 0
		return
	}
	if sb.cursor >= n {
		sb.cursor = n - 1
	}
	if sb.cursor < 0 {
		sb.cursor = 0
	}
}

// View renders the sidebar.
func (sb *Sidebar) View() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	var lines []string
	lines = append(lines, headerStyle.Render("Conversations"))

	if sb.filter != "" {
		filterStyle := lipgloss.NewStyle().Foreground(styles.Amber)
		lines = append(lines, filterStyle.Render("/"+sb.filter))
	}

	visible := sb.Visible()
	if len(visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		lines = append(lines, emptyStyle.Render("no conversations"))
	}

	itemWidth := sb.width - 4
	if itemWidth < 10 {
		itemWidth = 10
	}

	maxItems := sb.height - len(lines) - 1
	if maxItems < 1 {
		maxItems = 1
	}

	// Keep the cursor in view
	start := 0
	if sb.cursor >= maxItems {
		start = sb.cursor - maxItems + 1
	}

	for i := start; i < len(visible) && i < start+maxItems; i++ {
		conv := visible[i]
		title := util.TruncateWidth(conv.Title, itemWidth)

		var style lipgloss.Style
		switch {
		case i == sb.cursor:
			style = lipgloss.NewStyle().
				Background(styles.Purple).
				Foreground(styles.TextInverse).
				Bold(true).
				Padding(0, 1)
		case conv.ID == sb.activeID:
			style = lipgloss.NewStyle().
				Foreground(styles.Cyan).
				Bold(true).
				Padding(0, 1)
		default:
			style = lipgloss.NewStyle().
				Foreground(styles.TextPrimary).
				Padding(0, 1)
		}

		lines = append(lines, style.Render(title))

		meta := formatRelativeTime(conv.CreatedAt) + " - " + strconv.Itoa(conv.MessageCount()) + " msgs"
		metaStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			PaddingLeft(2)
		lines = append(lines, metaStyle.Render(util.TruncateWidth(meta, itemWidth)))
	}

	content := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(sb.width).
		Height(sb.height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		Render(content)
}

// formatRelativeTime formats a timestamp relative to now ("2h ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	}
}
