// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides flat key-value persistence for parley.
package kv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sort"

	"github.com/jeranaias/parley-tui/internal/model"
)

// Stored keys. Values are JSON-encoded.
const (
	KeyConversations = "conversations"
	KeySelectedModel = "selected-model"
)

// =============================================================================
// PERSISTENCE ADAPTER
// =============================================================================

// Adapter translates between domain types and the key-value backend.
// Failures never cross this boundary: reads degrade to "no data" and
// writes are best-effort, logged and swallowed. The in-memory state
// stays authoritative either way.
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

// NewAdapter creates an adapter over the given backend. A nil logger
// falls back to slog.Default.
func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{backend: backend, logger: logger}
}

// =============================================================================
// CONVERSATION PERSISTENCE
// =============================================================================

// LoadConversations returns the persisted conversation list sorted by
// creation time, newest first. Absent or malformed data yields an empty
// slice, never an error.
func (a *Adapter) LoadConversations() []*model.Conversation {
	raw, err := a.backend.Get(KeyConversations)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.logger.Warn("failed to read stored conversations", "error", err)
		}
		return []*model.Conversation{}
	}

	var convs []*model.Conversation
	if err := json.Unmarshal(raw, &convs); err != nil {
		a.logger.Warn("stored conversations are malformed, starting fresh", "error", err)
		return []*model.Conversation{}
	}

	// Guard against hand-edited store files.
	valid := convs[:0]
	for _, conv := range convs {
		if conv != nil && conv.ID != "" {
			valid = append(valid, conv)
		}
	}
	convs = valid

	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].CreatedAt.After(convs[j].CreatedAt)
	})
	return convs
}

// SaveConversations writes the full conversation list. Best-effort:
// failures are logged and swallowed, the caller continues in memory.
func (a *Adapter) SaveConversations(convs []*model.Conversation) {
	raw, err := json.Marshal(convs)
	if err != nil {
		a.logger.Error("failed to encode conversations", "error", err)
		return
	}
	if err := a.backend.Set(KeyConversations, raw); err != nil {
		a.logger.Error("failed to persist conversations", "error", err)
	}
}

// =============================================================================
// MODEL SELECTION PERSISTENCE
// =============================================================================

// LoadModel returns the persisted model selection, or false when absent
// or malformed.
func (a *Adapter) LoadModel() (string, bool) {
	raw, err := a.backend.Get(KeySelectedModel)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.logger.Warn("failed to read stored model selection", "error", err)
		}
		return "", false
	}

	var modelID string
	if err := json.Unmarshal(raw, &modelID); err != nil {
		a.logger.Warn("stored model selection is malformed", "error", err)
		return "", false
	}
	if modelID == "" {
		return "", false
	}
	return modelID, true
}

// SaveModel persists the model selection. Best-effort like
// SaveConversations.
func (a *Adapter) SaveModel(modelID string) {
	raw, err := json.Marshal(modelID)
	if err != nil {
		a.logger.Error("failed to encode model selection", "error", err)
		return
	}
	if err := a.backend.Set(KeySelectedModel, raw); err != nil {
		a.logger.Error("failed to persist model selection", "error", err)
	}
}
