// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides flat key-value persistence for parley.
package kv

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parley-tui/internal/model"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	backend, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewAdapter(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func convWithTime(title string, created time.Time) *model.Conversation {
	conv := model.NewConversation(model.DefaultModel)
	conv.Title = title
	conv.CreatedAt = created
	return conv
}

// =============================================================================
// CONVERSATION ROUND-TRIP TESTS
// =============================================================================

func TestAdapter_LoadEmptyStore(t *testing.T) {
	adapter := newTestAdapter(t)

	convs := adapter.LoadConversations()
	assert.NotNil(t, convs)
	assert.Empty(t, convs)
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	adapter := newTestAdapter(t)

	conv := model.NewConversation("gpt-5.1")
	conv.AddMessage(model.NewUserMessage("Hello"))
	conv.AddMessage(model.NewBotMessage("Hi there"))
	adapter.SaveConversations([]*model.Conversation{conv})

	loaded := adapter.LoadConversations()
	require.Len(t, loaded, 1)
	assert.Equal(t, conv.ID, loaded[0].ID)
	assert.Equal(t, "Hello", loaded[0].Title)
	assert.Equal(t, "gpt-5.1", loaded[0].Model)
	require.Len(t, loaded[0].Messages, 2)
	assert.Equal(t, model.SenderUser, loaded[0].Messages[0].Sender)
	assert.Equal(t, "Hi there", loaded[0].Messages[1].Text)
}

func TestAdapter_LoadSortsNewestFirst(t *testing.T) {
	adapter := newTestAdapter(t)
	base := time.Now()

	oldest := convWithTime("oldest", base.Add(-2*time.Hour))
	middle := convWithTime("middle", base.Add(-time.Hour))
	newest := convWithTime("newest", base)

	// Persist deliberately out of order; the sort happens at load time.
	adapter.SaveConversations([]*model.Conversation{middle, oldest, newest})

	loaded := adapter.LoadConversations()
	require.Len(t, loaded, 3)
	assert.Equal(t, "newest", loaded[0].Title)
	assert.Equal(t, "middle", loaded[1].Title)
	assert.Equal(t, "oldest", loaded[2].Title)
}

func TestAdapter_SaveLoadSaveIsIdempotent(t *testing.T) {
	backend, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer backend.Close()
	adapter := NewAdapter(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))

	conv := model.NewConversation(model.DefaultModel)
	conv.AddMessage(model.NewUserMessage("Hello"))
	adapter.SaveConversations([]*model.Conversation{conv})

	first, err := backend.Get(KeyConversations)
	require.NoError(t, err)

	adapter.SaveConversations(adapter.LoadConversations())

	second, err := backend.Get(KeyConversations)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

// =============================================================================
// ERROR CONTAINMENT TESTS
// =============================================================================

func TestAdapter_MalformedDataDegradesToEmpty(t *testing.T) {
	backend, err := OpenFileBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer backend.Close()
	adapter := NewAdapter(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Valid JSON, wrong shape.
	require.NoError(t, backend.Set(KeyConversations, []byte(`{"not":"a list"}`)))
	assert.Empty(t, adapter.LoadConversations())

	require.NoError(t, backend.Set(KeySelectedModel, []byte(`{"bad": true}`)))
	_, ok := adapter.LoadModel()
	assert.False(t, ok)
}

// failingBackend simulates a backend whose writes fail (quota, I/O).
type failingBackend struct{}

func (failingBackend) Get(key string) ([]byte, error) {
	return nil, &BackendError{Op: "get", Key: key, Err: ErrKeyNotFound}
}
func (failingBackend) Set(key string, value []byte) error {
	return &BackendError{Op: "set", Key: key, Err: errors.New("disk full")}
}
func (failingBackend) Delete(key string) error { return nil }
func (failingBackend) Close() error            { return nil }

func TestAdapter_WriteFailuresAreSwallowed(t *testing.T) {
	adapter := NewAdapter(failingBackend{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Neither call may panic or surface an error to the caller.
	adapter.SaveConversations([]*model.Conversation{model.NewConversation(model.DefaultModel)})
	adapter.SaveModel("gpt-5")
}

// =============================================================================
// MODEL SELECTION TESTS
// =============================================================================

func TestAdapter_ModelRoundTrip(t *testing.T) {
	adapter := newTestAdapter(t)

	_, ok := adapter.LoadModel()
	assert.False(t, ok, "empty store should have no model")

	adapter.SaveModel("gemini-2.5-flash")

	got, ok := adapter.LoadModel()
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash", got)
}
