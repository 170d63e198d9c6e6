// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "strings"

// =============================================================================
// MODEL CATALOG
// =============================================================================

// DefaultModel is the model selected when no persisted choice exists.
const DefaultModel = "gpt-5.2-codex"

// ModelInfo describes a selectable chat model.
type ModelInfo struct {
	// ID is the identifier sent to the chat service.
	ID string `json:"id"`

	// Name is the human-readable display name.
	Name string `json:"name"`
}

// Catalog lists the known chat models in display order. The service
// accepts any identifier; this list only drives the picker.
var Catalog = []ModelInfo{
	{ID: "gpt-5.2-codex", Name: "GPT-5.2 Codex (Best)"},
	{ID: "gpt-5.2", Name: "GPT-5.2"},
	{ID: "gpt-5.1-codex-max", Name: "GPT-5.1 Codex Max"},
	{ID: "gpt-5.1-codex", Name: "GPT-5.1 Codex"},
	{ID: "gpt-5-codex", Name: "GPT-5 Codex"},
	{ID: "gpt-5.1", Name: "GPT-5.1"},
	{ID: "gpt-5", Name: "GPT-5"},
	{ID: "gpt-5-codex-mini", Name: "GPT-5 Codex Mini"},
	{ID: "gpt-5.1-codex-mini", Name: "GPT-5.1 Codex Mini"},
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro"},
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"},
	{ID: "gemini-2.5-flash-lite", Name: "Gemini 2.5 Flash Lite (Fast)"},
	{ID: "gemini-3-flash-preview", Name: "Gemini 3 Flash Preview"},
}

// =============================================================================
// LOOKUP FUNCTIONS
// =============================================================================

// LookupModel finds a catalog entry by ID or (partial) display name.
func LookupModel(nameOrID string) (ModelInfo, bool) {
	for _, info := range Catalog {
		if info.ID == nameOrID {
			return info, true
		}
	}

	lower := strings.ToLower(nameOrID)
	for _, info := range Catalog {
		if strings.Contains(strings.ToLower(info.Name), lower) {
			return info, true
		}
	}

	return ModelInfo{}, false
}

// ModelDisplayName returns the display name for a model ID, falling
// back to the raw ID for models outside the catalog.
func ModelDisplayName(id string) string {
	if info, ok := LookupModel(id); ok {
		return info.Name
	}
	return id
}

// ModelIDs returns the catalog identifiers in display order.
func ModelIDs() []string {
	ids := make([]string, 0, len(Catalog))
	for _, info := range Catalog {
		ids = append(ids, info.ID)
	}
	return ids
}
