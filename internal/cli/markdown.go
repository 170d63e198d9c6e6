// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// markdown.go - Markdown rendering for CLI responses.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/parley-tui/internal/ui/components"
)

// markdownRenderer is the shared glamour renderer for reply output.
// USABILITY: Renders markdown replies with syntax highlighting.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. When
// the full renderer is unavailable, code spans still get highlighted.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return highlightCodeSpans(content)
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return highlightCodeSpans(content)
	}
	return rendered
}

// highlightCodeSpans styles fenced and inline code directly, leaving
// the rest of the text untouched. Fenced and inline styling never mix
// on the same text: a reply with fences keeps its backticked spans
// verbatim rather than risking a fence marker being eaten as inline
// code.
func highlightCodeSpans(content string) string {
	if strings.Contains(content, "```") {
		return components.ParseCodeBlocks(content, GetTerminalWidth())
	}
	if strings.Contains(content, "`") {
		return components.ParseInlineCode(content)
	}
	return content
}

// displayResponse prints a reply with markdown rendering when appropriate.
// Only renders markdown when stdout is a TTY to avoid corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Println(response)
	}
}
