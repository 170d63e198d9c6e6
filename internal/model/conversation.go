// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/jeranaias/parley-tui/internal/util"
)

// DefaultTitle is the placeholder title a conversation carries until its
// first user message arrives.
const DefaultTitle = "New Chat"

// TitleMaxRunes is the display length the auto-derived title is
// truncated to.
const TitleMaxRunes = 30

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a titled, ordered sequence of chat messages tied to
// one model selection. The message sequence is append-only; past
// messages are never edited or reordered.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	Model     string     `json:"model"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewConversation creates an empty conversation for the given model with
// a generated ID, the default title, and the current time.
func NewConversation(modelID string) *Conversation {
	return &Conversation{
		ID:        NewConversationID(),
		Title:     DefaultTitle,
		Messages:  make([]*Message, 0),
		Model:     modelID,
		CreatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message and derives the title from the first
// user message while the conversation still carries the default title.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.updateTitle(msg)
}

// updateTitle sets the title from the first user message. Once derived,
// the title never changes again through appends.
func (c *Conversation) updateTitle(msg *Message) {
	if c.Title != DefaultTitle && c.Title != "" {
		return
	}
	if msg.Sender != SenderUser {
		return
	}
	for _, m := range c.Messages[:len(c.Messages)-1] {
		if m.Sender == SenderUser {
			return
		}
	}
	c.Title = util.Preview(msg.Text, TitleMaxRunes)
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// HasDefaultTitle reports whether the title is still the placeholder.
func (c *Conversation) HasDefaultTitle() bool {
	return c.Title == DefaultTitle || c.Title == ""
}

// =============================================================================
// HISTORY CONVERSION
// =============================================================================

// Turn is one prior exchange entry in the two-role wire schema.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History converts the transcript to wire turns, mapping sender tags to
// the user/assistant role schema. Every message is included, error
// entries too, so the service sees the same transcript the user does.
func (c *Conversation) History() []Turn {
	turns := make([]Turn, len(c.Messages))
	for i, msg := range c.Messages {
		turns[i] = Turn{
			Role:    msg.Sender.ChatRole(),
			Content: msg.Text,
		}
	}
	return turns
}

// =============================================================================
// SNAPSHOT SUPPORT
// =============================================================================

// Clone creates a deep copy of the conversation. Snapshots hand these
// out so no caller ever holds a mutable reference into the store.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:        c.ID,
		Title:     c.Title,
		Model:     c.Model,
		CreatedAt: c.CreatedAt,
		Messages:  make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}

// Preview returns a short excerpt of the latest message for list views.
func (c *Conversation) Preview(maxRunes int) string {
	last := c.LastMessage()
	if last == nil {
		return ""
	}
	return last.Preview(maxRunes)
}
