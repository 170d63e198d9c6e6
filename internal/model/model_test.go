// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// SENDER TESTS
// =============================================================================

func TestSender_ChatRole(t *testing.T) {
	tests := []struct {
		sender Sender
		want   string
	}{
		{SenderUser, "user"},
		{SenderBot, "assistant"},
	}

	for _, tc := range tests {
		t.Run(string(tc.sender), func(t *testing.T) {
			if got := tc.sender.ChatRole(); got != tc.want {
				t.Errorf("ChatRole() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSender_DisplayName(t *testing.T) {
	if got := SenderUser.DisplayName(); got != "You" {
		t.Errorf("SenderUser.DisplayName() = %q, want 'You'", got)
	}
	if got := SenderBot.DisplayName(); got != "Assistant" {
		t.Errorf("SenderBot.DisplayName() = %q, want 'Assistant'", got)
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("hello")
		if msg.ID == "" {
			t.Fatal("Message ID should not be empty")
		}
		if !strings.HasPrefix(msg.ID, "msg_") {
			t.Errorf("Message ID %q should have msg_ prefix", msg.ID)
		}
		if seen[msg.ID] {
			t.Fatalf("Duplicate message ID: %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage("connection refused")

	if msg.Sender != SenderBot {
		t.Errorf("Error message sender = %q, want bot", msg.Sender)
	}
	if !msg.IsError {
		t.Error("Error message should have IsError set")
	}
	if msg.Text != "connection refused" {
		t.Errorf("Error message text = %q", msg.Text)
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewBotMessage("a reply that goes on for quite a while indeed")
	preview := msg.Preview(10)
	if len([]rune(preview)) > 13 { // 10 runes + marker
		t.Errorf("Preview too long: %q", preview)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation(DefaultModel)

	if conv.ID == "" {
		t.Error("Conversation ID should not be empty")
	}
	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("Conversation ID %q should have conv_ prefix", conv.ID)
	}
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", conv.Title, DefaultTitle)
	}
	if conv.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", conv.Model, DefaultModel)
	}
	if !conv.IsEmpty() {
		t.Error("New conversation should be empty")
	}
	if conv.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation(DefaultModel)

	conv.AddMessage(NewUserMessage("Hello"))
	if conv.Title != "Hello" {
		t.Errorf("Title = %q, want 'Hello'", conv.Title)
	}

	// Subsequent messages never change an already-derived title.
	conv.AddMessage(NewBotMessage("Hi there"))
	conv.AddMessage(NewUserMessage("Something else entirely"))
	if conv.Title != "Hello" {
		t.Errorf("Title changed to %q after later appends", conv.Title)
	}
}

func TestConversation_TitleTruncation(t *testing.T) {
	conv := NewConversation(DefaultModel)
	long := strings.Repeat("a", 40)

	conv.AddMessage(NewUserMessage(long))

	want := strings.Repeat("a", TitleMaxRunes) + "..."
	if conv.Title != want {
		t.Errorf("Title = %q, want %q", conv.Title, want)
	}
}

func TestConversation_TitleExactLengthNotTruncated(t *testing.T) {
	conv := NewConversation(DefaultModel)
	exact := strings.Repeat("b", TitleMaxRunes)

	conv.AddMessage(NewUserMessage(exact))

	if conv.Title != exact {
		t.Errorf("Title = %q, want %q", conv.Title, exact)
	}
}

func TestConversation_BotMessageDoesNotSetTitle(t *testing.T) {
	conv := NewConversation(DefaultModel)

	conv.AddMessage(NewBotMessage("greetings"))
	if conv.Title != DefaultTitle {
		t.Errorf("Title = %q, want default after bot message", conv.Title)
	}

	conv.AddMessage(NewUserMessage("actual question"))
	if conv.Title != "actual question" {
		t.Errorf("Title = %q, want 'actual question'", conv.Title)
	}
}

func TestConversation_AppendOnly(t *testing.T) {
	conv := NewConversation(DefaultModel)

	var ids []string
	for i := 0; i < 5; i++ {
		msg := NewUserMessage("msg")
		conv.AddMessage(msg)
		ids = append(ids, msg.ID)
	}

	if conv.MessageCount() != 5 {
		t.Fatalf("MessageCount = %d, want 5", conv.MessageCount())
	}
	for i, msg := range conv.Messages {
		if msg.ID != ids[i] {
			t.Errorf("Message %d out of order", i)
		}
	}
}

func TestConversation_History(t *testing.T) {
	conv := NewConversation(DefaultModel)
	conv.AddMessage(NewUserMessage("Hello"))
	conv.AddMessage(NewBotMessage("Hi there"))
	conv.AddMessage(NewErrorMessage("[SYSTEM ERROR]: timeout"))
	conv.AddMessage(NewUserMessage("Are you back?"))

	history := conv.History()

	// Error entries are replayed like any other message, so the wire
	// history matches the transcript turn for turn.
	if len(history) != 4 {
		t.Fatalf("History length = %d, want 4", len(history))
	}
	want := []Turn{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there"},
		{Role: "assistant", Content: "[SYSTEM ERROR]: timeout"},
		{Role: "user", Content: "Are you back?"},
	}
	for i, turn := range history {
		if turn != want[i] {
			t.Errorf("Turn %d = %+v, want %+v", i, turn, want[i])
		}
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation(DefaultModel)
	conv.AddMessage(NewUserMessage("original"))

	clone := conv.Clone()
	clone.Messages[0].Text = "mutated"
	clone.AddMessage(NewBotMessage("extra"))

	if conv.Messages[0].Text != "original" {
		t.Error("Clone mutation leaked into the source conversation")
	}
	if conv.MessageCount() != 1 {
		t.Errorf("Source message count changed: %d", conv.MessageCount())
	}
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestCatalog_ContainsDefault(t *testing.T) {
	if _, ok := LookupModel(DefaultModel); !ok {
		t.Errorf("Default model %q missing from catalog", DefaultModel)
	}
}

func TestCatalog_HaveRequiredFields(t *testing.T) {
	for _, info := range Catalog {
		t.Run(info.ID, func(t *testing.T) {
			if info.ID == "" {
				t.Error("ModelInfo.ID should not be empty")
			}
			if info.Name == "" {
				t.Error("ModelInfo.Name should not be empty")
			}
		})
	}
}

func TestLookupModel(t *testing.T) {
	info, ok := LookupModel("gemini-2.5-pro")
	if !ok {
		t.Fatal("LookupModel(gemini-2.5-pro) should succeed")
	}
	if info.Name != "Gemini 2.5 Pro" {
		t.Errorf("Name = %q, want 'Gemini 2.5 Pro'", info.Name)
	}

	// Partial name match.
	if _, ok := LookupModel("codex max"); !ok {
		t.Error("Partial name lookup should succeed")
	}

	if _, ok := LookupModel("no-such-model"); ok {
		t.Error("Unknown model lookup should fail")
	}
}

func TestModelDisplayName_FallsBackToID(t *testing.T) {
	if got := ModelDisplayName("custom-model"); got != "custom-model" {
		t.Errorf("ModelDisplayName = %q, want raw ID", got)
	}
}
