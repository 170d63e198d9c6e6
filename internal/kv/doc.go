// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides flat key-value persistence for parley.
//
// The package has two layers. Backend is a minimal synchronous string-key
// byte-value store with two implementations: FileBackend keeps every key
// in one JSON file written atomically, and SQLBackend keeps them in a
// single-table SQLite database. Adapter sits on top of a Backend and
// translates between domain types and stored JSON, containing every
// persistence failure at its boundary.
//
// Persistence is advisory, not authoritative: malformed stored data
// degrades to "no data", and write failures are logged and swallowed so
// the application keeps running on its in-memory state.
//
// # Stored Layout
//
//   - key "conversations" holds the JSON-encoded conversation list
//   - key "selected-model" holds the selected model identifier
//
// # Usage
//
//	backend, err := kv.OpenFileBackend(path)
//	if err != nil { ... }
//	adapter := kv.NewAdapter(backend, logger)
//	convs := adapter.LoadConversations() // empty slice if absent/corrupt
package kv
