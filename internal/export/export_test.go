// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/parley-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation("gpt-5.2-codex")
	conv.AddMessage(model.NewUserMessage("How do I reverse a slice in Go?"))
	conv.AddMessage(model.NewBotMessage("Use a two-index swap loop:\n\n```go\nfor i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {\n\ts[i], s[j] = s[j], s[i]\n}\n```"))
	return conv
}

func TestMarkdownExport(t *testing.T) {
	conv := sampleConversation()

	content, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := string(content)
	if !strings.Contains(out, "# How do I reverse a slice in Go?") {
		t.Error("missing title heading")
	}
	if !strings.Contains(out, "[User]") || !strings.Contains(out, "[Assistant]") {
		t.Error("missing role labels")
	}
	if !strings.Contains(out, "model: gpt-5.2-codex") {
		t.Error("missing model in frontmatter")
	}
	if !strings.Contains(out, "```go") {
		t.Error("code fence not preserved")
	}
}

func TestMarkdownExportSkipsErrorsByDefault(t *testing.T) {
	conv := sampleConversation()
	conv.AddMessage(model.NewErrorMessage("[SYSTEM ERROR]: network response was not ok"))

	content, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if strings.Contains(string(content), "[SYSTEM ERROR]") {
		t.Error("error entry should be excluded by default")
	}

	opts := DefaultOptions()
	opts.IncludeErrors = true
	content, err = NewMarkdownExporter(opts).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(string(content), "[SYSTEM ERROR]") {
		t.Error("error entry should be included when requested")
	}
}

func TestMarkdownExportWithoutMetadata(t *testing.T) {
	conv := sampleConversation()

	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	content, err := NewMarkdownExporter(opts).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := string(content)
	if strings.Contains(out, "Session Information") {
		t.Error("metadata section should be absent")
	}
	if strings.Contains(out, "<sub>") {
		t.Error("timestamps should be absent")
	}
}

func TestMarkdownExportRejectsEmpty(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(nil); err == nil {
		t.Error("expected error for nil conversation")
	}
	if _, err := NewMarkdownExporter(nil).Export(model.NewConversation("gpt-5.2-codex")); err == nil {
		t.Error("expected error for empty conversation")
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	conv := sampleConversation()

	content, err := NewJSONExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded model.Conversation
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if decoded.ID != conv.ID {
		t.Errorf("ID mismatch: %s vs %s", decoded.ID, conv.ID)
	}
	if len(decoded.Messages) != len(conv.Messages) {
		t.Errorf("message count mismatch: %d vs %d", len(decoded.Messages), len(conv.Messages))
	}
}

func TestExportToFile(t *testing.T) {
	conv := sampleConversation()
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportMarkdown(conv, opts)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("file written outside output dir: %s", path)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("expected .md extension, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Simple Title", "Simple_Title"},
		{"path/to:file", "path-to-file"},
		{"quotes\"and<brackets>", "quotes-and-brackets-"},
		{"", "conversation"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeYAML(t *testing.T) {
	if got := escapeYAML("plain title"); got != "plain title" {
		t.Errorf("plain string should pass through, got %q", got)
	}
	if got := escapeYAML("has: colon"); got != "\"has: colon\"" {
		t.Errorf("colon should trigger quoting, got %q", got)
	}
	if got := escapeYAML("line\nbreak"); got != "\"line\\nbreak\"" {
		t.Errorf("newline should be escaped, got %q", got)
	}
}
