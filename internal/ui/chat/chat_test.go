// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/kv"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	backend, err := kv.OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("OpenFileBackend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	st := store.New(kv.NewAdapter(backend, nil))
	if err := st.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return st
}

func newTestModel(t *testing.T) (Model, *store.Store) {
	t.Helper()

	st := newTestStore(t)
	m := New(st, api.NewClient("http://localhost:1/chat"), config.Default())
	m.resize(120, 40)
	return m, st
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want chat.Model", updated)
	}
	return next
}

// =============================================================================
// MODEL TESTS
// =============================================================================

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput", m.Focus())
	}
}

func TestResizeNarrowHidesSidebar(t *testing.T) {
	m, _ := newTestModel(t)

	m.resize(50, 24)
	if m.showSidebar {
		t.Error("sidebar should be hidden below 60 columns")
	}

	m.resize(120, 40)
	if !m.showSidebar {
		t.Error("sidebar should be visible at 120 columns")
	}
}

// =============================================================================
// SUBMIT FLOW
// =============================================================================

func TestSubmitAppendsUserMessageAndWaits(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("hello there")
	m = update(t, m, keyMsg("enter"))

	if m.State() != StateWaiting {
		t.Fatalf("state = %v, want StateWaiting", m.State())
	}

	active := st.Snapshot().Active()
	if active.MessageCount() != 1 {
		t.Fatalf("MessageCount() = %d, want 1", active.MessageCount())
	}
	msg := active.Messages[0]
	if msg.Sender != model.SenderUser || msg.Text != "hello there" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestSubmitIgnoredWhileWaiting(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("first")
	m = update(t, m, keyMsg("enter"))
	m.input.SetValue("second")
	m = update(t, m, keyMsg("enter"))

	if got := st.Snapshot().Active().MessageCount(); got != 1 {
		t.Errorf("MessageCount() = %d, want 1 (second submit dropped)", got)
	}
}

func TestSubmitEmptyInputIsNoop(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("   ")
	m = update(t, m, keyMsg("enter"))

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}
	if got := st.Snapshot().Active().MessageCount(); got != 0 {
		t.Errorf("MessageCount() = %d, want 0", got)
	}
}

func TestResponseAppendsBotReply(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("hi")
	m = update(t, m, keyMsg("enter"))
	convID := st.ActiveID()

	m = update(t, m, ChatResponseMsg{
		Seq:            m.seq,
		ConversationID: convID,
		Response:       "hello back",
	})

	if m.State() != StateReady {
		t.Errorf("state = %v, want StateReady", m.State())
	}

	active := st.Snapshot().Active()
	if active.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", active.MessageCount())
	}
	reply := active.Messages[1]
	if reply.Sender != model.SenderBot || reply.Text != "hello back" {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

func TestErrorAppendsFlaggedEntry(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("hi")
	m = update(t, m, keyMsg("enter"))
	convID := st.ActiveID()

	m = update(t, m, ChatErrorMsg{
		Seq:            m.seq,
		ConversationID: convID,
		Err:            &api.NetworkError{Status: 500, Detail: "model overloaded"},
	})

	active := st.Snapshot().Active()
	if active.MessageCount() != 2 {
		t.Fatalf("MessageCount() = %d, want 2", active.MessageCount())
	}

	entry := active.Messages[1]
	if !entry.IsError {
		t.Error("entry should be flagged as an error")
	}
	if entry.Text != "[SYSTEM ERROR]: model overloaded" {
		t.Errorf("entry text = %q", entry.Text)
	}

	// The flagged entry is part of the transcript, so it travels with
	// the outbound history like any other message.
	history := active.History()
	if len(history) != 2 {
		t.Fatalf("History length = %d, want 2", len(history))
	}
	last := history[len(history)-1]
	if last.Role != "assistant" || !strings.Contains(last.Content, "SYSTEM ERROR") {
		t.Errorf("error entry missing from history, got %+v", last)
	}

	if !m.toasts.HasToasts() {
		t.Error("a toast should report the failure")
	}
}

func TestStaleResultDropped(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("hi")
	m = update(t, m, keyMsg("enter"))
	convID := st.ActiveID()

	m = update(t, m, ChatResponseMsg{
		Seq:            m.seq - 1,
		ConversationID: convID,
		Response:       "late reply",
	})

	if m.State() != StateWaiting {
		t.Errorf("state = %v, want StateWaiting (stale result dropped)", m.State())
	}
	if got := st.Snapshot().Active().MessageCount(); got != 1 {
		t.Errorf("MessageCount() = %d, want 1", got)
	}
}

func TestCancelWhileWaiting(t *testing.T) {
	m, st := newTestModel(t)

	m.input.SetValue("hi")
	m = update(t, m, keyMsg("enter"))
	seq := m.seq
	convID := st.ActiveID()

	m = update(t, m, keyMsg("esc"))
	if m.State() != StateReady {
		t.Fatalf("state = %v, want StateReady after cancel", m.State())
	}

	// The cancelled request's result arrives late and is dropped.
	m = update(t, m, ChatResponseMsg{Seq: seq, ConversationID: convID, Response: "late"})
	if got := st.Snapshot().Active().MessageCount(); got != 1 {
		t.Errorf("MessageCount() = %d, want 1", got)
	}
}

// =============================================================================
// CONVERSATION MANAGEMENT KEYS
// =============================================================================

func TestNewChatKeyCreatesConversation(t *testing.T) {
	m, st := newTestModel(t)

	before := st.ActiveID()
	m = update(t, m, keyMsg("ctrl+n"))

	snap := st.Snapshot()
	if len(snap.Conversations) != 2 {
		t.Fatalf("conversations = %d, want 2", len(snap.Conversations))
	}
	if snap.ActiveID == before {
		t.Error("new conversation should become active")
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput", m.Focus())
	}
}

func TestSidebarSelectConversation(t *testing.T) {
	m, st := newTestModel(t)

	first := st.ActiveID()
	st.NewConversation()

	m = update(t, m, keyMsg("ctrl+k"))
	if m.Focus() != FocusSidebar {
		t.Fatalf("focus = %v, want FocusSidebar", m.Focus())
	}

	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("enter"))

	if st.ActiveID() != first {
		t.Errorf("ActiveID = %q, want %q", st.ActiveID(), first)
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput after selection", m.Focus())
	}
}

func TestSidebarDeleteNeverLeavesListEmpty(t *testing.T) {
	m, st := newTestModel(t)

	m = update(t, m, keyMsg("ctrl+k"))
	m = update(t, m, keyMsg("ctrl+x"))

	snap := st.Snapshot()
	if len(snap.Conversations) != 1 {
		t.Fatalf("conversations = %d, want 1 (synthesized replacement)", len(snap.Conversations))
	}
	if snap.ActiveID == "" {
		t.Error("a replacement conversation should be active")
	}
}

func TestSidebarFilterTyping(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, keyMsg("ctrl+k"))
	m = update(t, m, keyMsg("go"))
	if m.sidebar.Filter() != "go" {
		t.Errorf("filter = %q, want %q", m.sidebar.Filter(), "go")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.sidebar.Filter() != "g" {
		t.Errorf("filter = %q, want %q", m.sidebar.Filter(), "g")
	}

	// First escape clears the filter, second leaves the sidebar.
	m = update(t, m, keyMsg("esc"))
	if m.sidebar.Filter() != "" {
		t.Errorf("filter = %q, want empty", m.sidebar.Filter())
	}
	if m.Focus() != FocusSidebar {
		t.Errorf("focus = %v, want FocusSidebar", m.Focus())
	}
	m = update(t, m, keyMsg("esc"))
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput", m.Focus())
	}
}

// =============================================================================
// MODEL PICKER
// =============================================================================

func TestPickerSelectsModel(t *testing.T) {
	m, st := newTestModel(t)

	m = update(t, m, keyMsg("ctrl+p"))
	if m.Focus() != FocusPicker {
		t.Fatalf("focus = %v, want FocusPicker", m.Focus())
	}

	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("enter"))

	if st.Model() == model.DefaultModel {
		t.Error("selecting the next entry should change the model")
	}
	if m.Focus() != FocusInput {
		t.Errorf("focus = %v, want FocusInput after selection", m.Focus())
	}
}

func TestPickerEscapeKeepsModel(t *testing.T) {
	m, st := newTestModel(t)

	m = update(t, m, keyMsg("ctrl+p"))
	m = update(t, m, keyMsg("down"))
	m = update(t, m, keyMsg("esc"))

	if st.Model() != model.DefaultModel {
		t.Errorf("Model() = %q, want default after escape", st.Model())
	}
}

// =============================================================================
// VIEW
// =============================================================================

func TestViewRendersTranscript(t *testing.T) {
	m, st := newTestModel(t)

	st.AppendMessage(st.ActiveID(), model.NewUserMessage("render me"))
	m.refresh()

	view := m.View()
	if view == "" {
		t.Fatal("View() returned empty string")
	}
	if !strings.Contains(view, "render me") {
		t.Error("View() should contain the transcript text")
	}
}

func TestViewBeforeResize(t *testing.T) {
	st := newTestStore(t)
	m := New(st, api.NewClient(""), config.Default())

	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q before first resize", got)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestSendChatCmdSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response": "pong"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	cmd := sendChatCmd(context.Background(), client, 7, "conv_1", "ping", model.DefaultModel, nil)

	msg, ok := cmd().(ChatResponseMsg)
	if !ok {
		t.Fatalf("cmd() returned %T, want ChatResponseMsg", cmd())
	}
	if msg.Seq != 7 || msg.ConversationID != "conv_1" || msg.Response != "pong" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestSendChatCmdFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	cmd := sendChatCmd(context.Background(), client, 3, "conv_1", "ping", model.DefaultModel, nil)

	msg, ok := cmd().(ChatErrorMsg)
	if !ok {
		t.Fatalf("cmd() returned %T, want ChatErrorMsg", cmd())
	}
	if errorDetail(msg.Err) != "boom" {
		t.Errorf("errorDetail = %q, want %q", errorDetail(msg.Err), "boom")
	}
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReloadedAppliesUISettings(t *testing.T) {
	m, _ := newTestModel(t)

	cfg := config.Default()
	cfg.UI.ShowTimestamps = true
	cfg.UI.SidebarWidth = 20

	m = update(t, m, ConfigReloadedMsg{Config: cfg})

	if !m.showTimestamps {
		t.Error("expected timestamps enabled after reload")
	}
	if m.cfg.UI.SidebarWidth != 20 {
		t.Errorf("expected sidebar width 20, got %d", m.cfg.UI.SidebarWidth)
	}
	if !m.toasts.HasToasts() {
		t.Error("expected a reload notification toast")
	}
}

func TestConfigReloadedNilConfigIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.cfg

	m = update(t, m, ConfigReloadedMsg{Config: nil})

	if m.cfg != before {
		t.Error("expected config unchanged for nil reload")
	}
}

// =============================================================================
// ERROR DETAIL
// =============================================================================

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "network error with detail",
			err:  &api.NetworkError{Status: 503, Detail: "service unavailable"},
			want: "service unavailable",
		},
		{
			name: "network error without detail",
			err:  &api.NetworkError{},
			want: "chat request failed: ",
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "nil error",
			err:  nil,
			want: "network response was not ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorDetail(tt.err); got != tt.want {
				t.Errorf("errorDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
