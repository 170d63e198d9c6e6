// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
//
// This file contains the commands that perform work off the update
// loop: the chat exchange itself and conversation export.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/export"
	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// CHAT EXCHANGE
// =============================================================================

// sendChatCmd creates a command that performs one chat exchange. The
// history is the transcript as it stood before the submitted message.
// The result is tagged with seq and the conversation id so late
// arrivals land in the right transcript or get dropped.
func sendChatCmd(ctx context.Context, client *api.Client, seq int, conversationID, message, modelID string, history []model.Turn) tea.Cmd {
	return func() tea.Msg {
		response, err := client.Send(ctx, message, modelID, history)
		if err != nil {
			return ChatErrorMsg{
				Seq:            seq,
				ConversationID: conversationID,
				Err:            err,
			}
		}
		return ChatResponseMsg{
			Seq:            seq,
			ConversationID: conversationID,
			Response:       response,
		}
	}
}

// =============================================================================
// EXPORT
// =============================================================================

// exportChatCmd creates a command that writes the conversation as a
// Markdown file under outputDir.
func exportChatCmd(conv *model.Conversation, outputDir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = outputDir
		path, err := export.ExportMarkdown(conv, opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}
