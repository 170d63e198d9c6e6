// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // A chat request is in flight
)

// Focus identifies which part of the UI receives key presses.
type Focus int

const (
	FocusInput   Focus = iota // Text input at the bottom
	FocusSidebar              // Conversation list
	FocusPicker               // Model picker overlay
	FocusHelp                 // Help overlay
)

// Fixed component heights used when sizing the transcript viewport.
// renderHeader, renderInputArea, and the status bar must stay in sync
// with these.
const (
	headerHeight = 3
	inputHeight  = 3
	statusHeight = 1
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	// State
	state State
	focus Focus

	// Collaborators
	store  *store.Store
	client *api.Client
	cfg    *config.Config

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// UI components
	viewport viewport.Model
	input    textinput.Model

	messageList *components.MessageList
	markdown    *components.MarkdownRenderer
	sidebar     *components.Sidebar
	picker      *components.ModelPicker
	statusBar   *components.StatusBar
	spinner     components.Spinner

	// Non-blocking toasts in the bottom-right corner
	toasts *components.ToastManager

	// Key bindings
	keyMap KeyMap

	// Request tracking. seq identifies the current request generation;
	// results carrying an older seq are dropped. cancel aborts the
	// in-flight request, if any.
	seq    int
	cancel context.CancelFunc

	// Layout flags
	showSidebar    bool
	showTimestamps bool

	// Header state, derived from the store snapshot on refresh
	activeTitle string
	activeModel string
}

// New creates a new chat model over the given store and client.
func New(st *store.Store, client *api.Client, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	markdown := components.NewMarkdownRenderer(cfg.UI.MarkdownWidth)
	messageList := components.NewMessageList(theme)
	messageList.SetMarkdownRenderer(markdown)
	messageList.ShowTimestamps = cfg.UI.ShowTimestamps

	sp := components.NewThinkingSpinner()

	m := Model{
		state:          StateReady,
		focus:          FocusInput,
		store:          st,
		client:         client,
		cfg:            cfg,
		theme:          theme,
		viewport:       vp,
		input:          ti,
		messageList:    messageList,
		markdown:       markdown,
		sidebar:        components.NewSidebar(theme),
		picker:         components.NewModelPicker(theme),
		statusBar:      components.NewStatusBar(theme),
		spinner:        sp,
		toasts:         components.NewToastManager(),
		keyMap:         DefaultKeyMap(),
		showSidebar:    true,
		showTimestamps: cfg.UI.ShowTimestamps,
	}
	m.refresh()
	return m
}

// Init returns the initial command set.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns the current request state.
func (m Model) State() State {
	return m.state
}

// Focus returns the current input focus.
func (m Model) Focus() Focus {
	return m.focus
}

// =============================================================================
// SNAPSHOT REFRESH
// =============================================================================

// refresh re-reads the store snapshot into every component. Called
// after each mutation so the view never renders stale state.
func (m *Model) refresh() {
	snap := m.store.Snapshot()

	m.sidebar.SetConversations(snap.Conversations)
	m.sidebar.SetActive(snap.ActiveID)
	m.picker.SetSelected(snap.Model)
	m.statusBar.SetModel(snap.Model)
	m.activeModel = snap.Model

	active := snap.Active()
	if active != nil {
		m.activeTitle = active.Title
		m.statusBar.SetCounts(len(snap.Conversations), active.MessageCount())

		msgs := make([]model.Message, len(active.Messages))
		for i, msg := range active.Messages {
			msgs[i] = *msg
		}
		m.messageList.SetMessages(msgs)
	} else {
		m.activeTitle = ""
		m.statusBar.SetCounts(len(snap.Conversations), 0)
		m.messageList.SetMessages(nil)
	}

	m.messageList.ShowTimestamps = m.showTimestamps
	m.viewport.SetContent(m.messageList.View())
}

// =============================================================================
// RESIZE
// =============================================================================

// resize recomputes the layout for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	// The sidebar disappears entirely in narrow layouts.
	m.showSidebar = m.theme.GetLayoutMode() != styles.LayoutNarrow
	if m.focus == FocusSidebar && !m.showSidebar {
		m.focus = FocusInput
	}

	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = m.cfg.UI.SidebarWidth
		if limit := width / 3; sidebarWidth > limit {
			sidebarWidth = limit
		}
	}
	mainWidth := width - sidebarWidth

	contentHeight := height - headerHeight - inputHeight - statusHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = mainWidth
	m.viewport.Height = contentHeight
	m.sidebar.SetSize(sidebarWidth, contentHeight+headerHeight)
	m.messageList.SetWidth(mainWidth - 2)
	m.statusBar.SetWidth(width)
	m.input.Width = mainWidth - 6

	pickerWidth := 48
	if pickerWidth > width-8 {
		pickerWidth = width - 8
	}
	m.picker.SetWidth(pickerWidth)

	m.refresh()
	m.viewport.GotoBottom()
}
