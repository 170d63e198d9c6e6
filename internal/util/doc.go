// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides shared helpers for the parley application.
//
// This package contains the low-level pieces the rest of the code leans
// on: UTF-8 safe string truncation, terminal display-width measurement,
// and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation that fits within a rune budget
//   - Preview: first-N-runes excerpt with a continuation marker
//   - TruncateWidth, StringWidth: display-column aware helpers
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
