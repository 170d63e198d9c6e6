// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the full-screen chat interface.
//
// The package is a Bubble Tea program built around three pieces:
//
//   - Model (model.go) holds the UI state: the conversation store, the
//     chat client, focus, and every visual component.
//   - Update (update.go) routes key presses and async results through
//     the state machine. One chat exchange may be in flight at a time;
//     the input is disabled while waiting.
//   - View (view.go) composes the sidebar, transcript viewport, input
//     line, and status bar into the final frame, with the model picker
//     and toast notifications layered on top.
//
// Commands that talk to the network live in commands.go. All message
// types exchanged through the Bubble Tea runtime are in messages.go.
package chat
