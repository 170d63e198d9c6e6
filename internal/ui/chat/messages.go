// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
//
// This file defines the Bubble Tea message types used by the chat
// interface. Messages fall into three categories:
//   - Chat exchange: request completion and failure
//   - Export: file export completion
//   - Store: change notifications from the conversation store
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import "github.com/jeranaias/parley-tui/internal/config"

// =============================================================================
// CHAT EXCHANGE MESSAGES
// =============================================================================

// ChatResponseMsg delivers a successful reply from the chat service.
// Seq identifies the request generation; stale and cancelled requests
// carry an old Seq and are dropped.
type ChatResponseMsg struct {
	Seq            int
	ConversationID string
	Response       string
}

// ChatErrorMsg signals a failed chat exchange.
type ChatErrorMsg struct {
	Seq            int
	ConversationID string
	Err            error
}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportDoneMsg confirms a conversation export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// STORE MESSAGES
// =============================================================================

// StoreChangedMsg signals that the conversation store mutated outside
// the normal update path and the view should re-read its snapshot.
type StoreChangedMsg struct{}

// ConfigReloadedMsg carries a freshly reloaded configuration. Sent by
// the config file watcher while the TUI is running.
type ConfigReloadedMsg struct {
	Config *config.Config
}
