// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// MODEL PICKER COMPONENT
// =============================================================================

// ModelPicker is an overlay list for choosing the chat model.
type ModelPicker struct {
	models   []model.ModelInfo
	cursor   int
	selected string
	width    int
	theme    *styles.Theme
}

// NewModelPicker creates a picker over the full model catalog.
func NewModelPicker(theme *styles.Theme) *ModelPicker {
	p := &ModelPicker{
		models:   model.Catalog,
		selected: model.DefaultModel,
		width:    48,
		theme:    theme,
	}
	p.cursor = p.indexOf(p.selected)
	return p
}

// SetSelected moves the cursor to the given model ID.
func (p *ModelPicker) SetSelected(modelID string) {
	p.selected = modelID
	if idx := p.indexOf(modelID); idx >= 0 {
		p.cursor = idx
	}
}

// Selected returns the model ID under the cursor.
func (p *ModelPicker) Selected() string {
	if p.cursor < 0 || p.cursor >= len(p.models) {
		return model.DefaultModel
	}
	return p.models[p.cursor].ID
}

// MoveUp moves the cursor up.
func (p *ModelPicker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the cursor down.
func (p *ModelPicker) MoveDown() {
	if p.cursor < len(p.models)-1 {
		p.cursor++
	}
}

// SetWidth sets the picker width.
func (p *ModelPicker) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	p.width = width
}

func (p *ModelPicker) indexOf(modelID string) int {
	for i, m := range p.models {
		if m.ID == modelID {
			return i
		}
	}
	return -1
}

// View renders the picker overlay.
func (p *ModelPicker) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render("Select Model"))
	lines = append(lines, "")

	for i, m := range p.models {
		label := m.Name
		if m.ID == p.selected {
			label += " " + styles.StatusIndicators.Active
		}

		var style lipgloss.Style
		if i == p.cursor {
			style = lipgloss.NewStyle().
				Background(styles.Purple).
				Foreground(styles.TextInverse).
				Bold(true).
				Padding(0, 1)
		} else {
			style = lipgloss.NewStyle().
				Foreground(styles.TextPrimary).
				Padding(0, 1)
		}

		lines = append(lines, style.Render(label))
	}

	lines = append(lines, "")
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	lines = append(lines, hintStyle.Render("enter select  esc cancel"))

	return lipgloss.NewStyle().
		Background(styles.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 2).
		MaxWidth(p.width).
		Render(strings.Join(lines, "\n"))
}
