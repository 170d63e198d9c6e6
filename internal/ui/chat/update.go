// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages through the chat state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatResponseMsg:
		return m.handleResponse(msg)

	case ChatErrorMsg:
		return m.handleError(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg)

	case StoreChangedMsg:
		m.refresh()
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil

	case components.ToastDismissMsg:
		m.toasts.RemoveToast(msg.ID)
		return m, nil
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey dispatches a key press based on the current focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works everywhere.
	if key.Matches(msg, m.keyMap.Quit) {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	switch m.focus {
	case FocusPicker:
		return m.handlePickerKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

// handleInputKey handles keys while the text input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Cancel):
		return m.handleCancel()

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.NewConversation()
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Sidebar):
		if !m.showSidebar {
			m.toasts.AddStatus("Terminal too narrow for the conversation list")
			return m, components.ToastTickCmd()
		}
		m.focus = FocusSidebar
		m.input.Blur()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Picker):
		m.focus = FocusPicker
		m.input.Blur()
		m.picker.SetSelected(m.store.Model())
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		return m.handleExport()

	case key.Matches(msg, m.keyMap.Times):
		m.showTimestamps = !m.showTimestamps
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		// '?' goes into the input like any other rune; only C-h
		// opens help from input focus.
		if msg.String() == "ctrl+h" {
			m.focus = FocusHelp
			m.input.Blur()
			return m, nil
		}

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSidebarKey handles keys while the conversation list has focus.
// Plain runes build the title filter; navigation keys move the cursor.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		if m.sidebar.Filter() != "" {
			m.sidebar.SetFilter("")
			return m, nil
		}
		m.focus = FocusInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if conv := m.sidebar.Selected(); conv != nil {
			m.store.SelectConversation(conv.ID)
		}
		m.sidebar.SetFilter("")
		m.focus = FocusInput
		m.input.Focus()
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.store.NewConversation()
		m.sidebar.SetFilter("")
		m.focus = FocusInput
		m.input.Focus()
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Delete):
		if conv := m.sidebar.Selected(); conv != nil {
			m.store.DeleteConversation(conv.ID)
			m.refresh()
			m.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Sidebar):
		m.focus = FocusInput
		m.input.Focus()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.sidebar.SetFilter(m.sidebar.Filter() + string(msg.Runes))
	case tea.KeyBackspace:
		if filter := m.sidebar.Filter(); filter != "" {
			runes := []rune(filter)
			m.sidebar.SetFilter(string(runes[:len(runes)-1]))
		}
	}
	return m, nil
}

// handlePickerKey handles keys while the model picker overlay is open.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel), key.Matches(msg, m.keyMap.Picker):
		m.focus = FocusInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.picker.MoveUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.picker.MoveDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		m.store.SetModel(m.picker.Selected())
		m.focus = FocusInput
		m.input.Focus()
		m.refresh()
		return m, nil
	}
	return m, nil
}

// handleHelpKey closes the help overlay on any dismissal key.
func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Cancel) || key.Matches(msg, m.keyMap.Help) ||
		msg.Type == tea.KeyEnter {
		m.focus = FocusInput
		m.input.Focus()
	}
	return m, nil
}

// =============================================================================
// CHAT EXCHANGE HANDLERS
// =============================================================================

// handleSubmit submits the typed message as one chat exchange. The
// user message joins the transcript immediately; the history sent to
// the service is the transcript as it stood before the submission.
// Only one exchange may be in flight at a time.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state == StateWaiting {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	snap := m.store.Snapshot()
	active := snap.Active()
	if active == nil {
		return m, nil
	}
	history := active.History()

	m.store.AppendMessage(active.ID, model.NewUserMessage(text))
	m.input.Reset()

	m.state = StateWaiting
	m.seq++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.statusBar.SetStatus(components.StatusWaiting)
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		sendChatCmd(ctx, m.client, m.seq, active.ID, text, snap.Model, history),
		m.spinner.Start(),
	)
}

// handleCancel aborts the in-flight exchange. The request generation
// advances so the late result is dropped when it arrives.
func (m Model) handleCancel() (tea.Model, tea.Cmd) {
	if m.state != StateWaiting {
		return m, nil
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
	m.state = StateReady
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusReady)
	m.toasts.AddStatus("Request cancelled")
	return m, components.ToastTickCmd()
}

// handleResponse appends a successful reply to its conversation. The
// reply goes to the conversation that sent the request even if the
// user switched conversations while waiting.
func (m Model) handleResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}

	m.state = StateReady
	m.cancel = nil
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusReady)

	m.store.AppendMessage(msg.ConversationID, model.NewBotMessage(msg.Response))
	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

// handleError records a failed exchange. The failure becomes a flagged
// transcript entry plus a toast; flagged entries never re-enter the
// history sent to the service.
func (m Model) handleError(msg ChatErrorMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return m, nil
	}

	m.state = StateReady
	m.cancel = nil
	m.spinner.Stop()
	m.statusBar.SetStatus(components.StatusError)

	detail := errorDetail(msg.Err)
	m.store.AppendMessage(msg.ConversationID, model.NewErrorMessage("[SYSTEM ERROR]: "+detail))
	m.toasts.AddError(detail)
	m.refresh()
	m.viewport.GotoBottom()
	return m, components.ToastTickCmd()
}

// =============================================================================
// EXPORT HANDLERS
// =============================================================================

// handleExport exports the active conversation as Markdown.
func (m Model) handleExport() (tea.Model, tea.Cmd) {
	active := m.store.Snapshot().Active()
	if active == nil || active.IsEmpty() {
		m.toasts.AddWarning("Nothing to export yet")
		return m, components.ToastTickCmd()
	}
	return m, exportChatCmd(active, "./exports")
}

// handleExportDone reports the export outcome as a toast.
func (m Model) handleExportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError("Export failed: " + msg.Err.Error())
	} else {
		m.toasts.AddSuccess("Exported to " + msg.Path)
	}
	return m, components.ToastTickCmd()
}

// handleConfigReloaded applies a hot-reloaded configuration: markdown
// wrap width, timestamp visibility, and sidebar width all take effect
// without restarting.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	m.cfg = msg.Config
	m.showTimestamps = msg.Config.UI.ShowTimestamps

	m.markdown = components.NewMarkdownRenderer(msg.Config.UI.MarkdownWidth)
	m.messageList.SetMarkdownRenderer(m.markdown)

	if m.width > 0 && m.height > 0 {
		m.resize(m.width, m.height)
	} else {
		m.refresh()
	}
	m.toasts.AddStatus("Configuration reloaded")
	return m, components.ToastTickCmd()
}

// =============================================================================
// ERROR DETAIL
// =============================================================================

// errorDetail extracts the human-readable detail from a chat failure.
func errorDetail(err error) string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) && netErr.Detail != "" {
		return netErr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return "network response was not ok"
}
