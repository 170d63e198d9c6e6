// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the
// application for representing chat conversations, transcript messages,
// and the selectable model catalog.
//
// # Key Types
//
//   - Conversation: titled, ordered message sequence tied to a model
//   - Message: single transcript entry with sender, text, and error flag
//   - Sender: message origin enumeration (user, bot)
//   - ModelInfo: a selectable chat model (ID, display name)
//
// # Usage
//
// Create a new conversation and append a message:
//
//	conv := model.NewConversation(model.DefaultModel)
//	conv.AddMessage(model.NewUserMessage("Hello!"))
//
// Convert a transcript to wire turns:
//
//	history := conv.History() // []Turn{{Role: "user", Content: "Hello!"}}
package model
