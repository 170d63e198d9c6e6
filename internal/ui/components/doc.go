// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the parley TUI.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries. Each component is designed to
be visually consistent with the parley design language.

# Core Components

## Display Components

MessageBubble (message.go) - Styled message bubbles for user, assistant, and
error transcript entries, with markdown rendering for assistant replies.
MarkdownRenderer (markdown.go) - Glamour-based terminal markdown rendering.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.
StatusBar (statusbar.go) - Bottom status bar with model name, counters, and shortcuts.
Sidebar (sidebar.go) - Conversation list with title filtering.
ModelPicker (modelpicker.go) - Overlay list for choosing the chat model.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with elapsed-time display.
Toast (error_toast.go) - Non-blocking corner notifications that auto-dismiss.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	bar.SetModel("gpt-5.2-codex")
	view := bar.View()

# Bubble Tea Integration

Stateful components implement the Bubble Tea update pattern:

	type Component interface {
		Init() tea.Cmd
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}
*/
package components
