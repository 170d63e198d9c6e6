// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the in-memory conversation list and the active
// conversation selection.
//
// The Store is an explicit, injectable object with a two-phase
// lifecycle: Initialize loads persisted state exactly once, then the
// mutation operations (NewConversation, SelectConversation,
// DeleteConversation, AppendMessage, RenameConversation, SetModel) run
// until process exit. Every mutation after Initialize rewrites the full
// conversation list through the persistence adapter.
//
// State is observed through Snapshot (deep copies, safe to hold) and
// Subscribe (change notification), keeping the Store independent of any
// particular UI binding.
//
// # Invariants
//
//   - exactly zero or one conversation is active at any time, and the
//     active id always refers to a conversation present in the list
//   - the list is never empty after a deletion; a replacement
//     conversation is synthesized when the last one is removed
//   - message sequences are append-only
//
// The Store is not synchronized: the single UI event loop is the only
// intended caller.
package store
