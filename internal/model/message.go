// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// ChatRole maps the sender tag to the wire role used by the chat
// service: user stays user, bot becomes assistant.
func (s Sender) ChatRole() string {
	if s == SenderBot {
		return "assistant"
	}
	return "user"
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in a conversation transcript.
// Messages are immutable once created; identity is ID.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// IsError marks transcript entries that record a failed chat
	// exchange rather than an ordinary bot reply.
	IsError bool `json:"is_error,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, text string) *Message {
	return &Message{
		ID:        NewMessageID(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(text string) *Message {
	return NewMessage(SenderUser, text)
}

// NewBotMessage creates a new bot message.
func NewBotMessage(text string) *Message {
	return NewMessage(SenderBot, text)
}

// NewErrorMessage creates a bot message flagged as an error entry.
func NewErrorMessage(text string) *Message {
	msg := NewMessage(SenderBot, text)
	msg.IsError = true
	return msg
}

// Preview returns a truncated single-line preview of the message text.
func (m *Message) Preview(maxRunes int) string {
	return util.Preview(m.Text, maxRunes)
}

// IsEmpty returns true if the message has no text.
func (m *Message) IsEmpty() bool {
	return len(m.Text) == 0
}

// =============================================================================
// ID GENERATION
// =============================================================================

// Identity comes from an explicit generator rather than timestamps so
// ordering semantics stay independent of identity.

// NewMessageID returns a fresh unique message identifier.
func NewMessageID() string {
	return "msg_" + uuid.NewString()
}

// NewConversationID returns a fresh unique conversation identifier.
func NewConversationID() string {
	return "conv_" + uuid.NewString()
}
