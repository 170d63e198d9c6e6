// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Conversation transcript export.
//
// Command: export [n]
// Short:   Export a conversation transcript to a file
//
// The positional argument selects the conversation by list position
// (1 = newest). Omitting it exports the active conversation.
//
// Flags:
//   --format md|json   Export format (default: md)
//   --output DIR       Output directory (default: ./exports)
//   --json             Emit the result envelope as JSON
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/export"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
)

// ExportResult describes a completed export for JSON output.
type ExportResult struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	Title    string `json:"title"`
	Messages int    `json:"messages"`
}

// HandleExport handles the "export" command.
func HandleExport(args Args) error {
	format := args.Options["format"]
	if format == "" {
		format = "md"
	}
	if format != "md" && format != "json" {
		return NewValidationError("format", fmt.Sprintf("unknown format %q (expected md or json)", format))
	}

	outputDir := args.Options["output"]
	if outputDir == "" {
		outputDir = "./exports"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	logger, closeLog := NewLogger(cfg)
	defer closeLog()

	st, closeStore, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	conv, err := selectConversation(st.Snapshot(), args.Subcommand)
	if err != nil {
		return err
	}
	if conv.IsEmpty() {
		return NewCommandError(ExitGeneralError, "conversation has no messages to export", nil)
	}

	opts := export.DefaultOptions()
	opts.OutputDir = outputDir
	opts.IncludeErrors = args.Verbose

	var path string
	switch format {
	case "md":
		path, err = export.ExportMarkdown(conv, opts)
	case "json":
		path, err = export.ExportJSON(conv, opts)
	}
	if err != nil {
		return NewCommandError(ExitGeneralError, "export failed", err)
	}

	if args.JSON {
		resp := NewJSONResponse("export", ExportResult{
			Path:     path,
			Format:   format,
			Title:    conv.Title,
			Messages: len(conv.Messages),
		})
		return resp.Print()
	}

	fmt.Printf("%s Exported %q to %s\n", SuccessStyle.Render("[OK]"), conv.Title, path)
	return nil
}

// selectConversation resolves the positional selector against the
// newest-first conversation list. Empty selector means the active one.
func selectConversation(snap store.Snapshot, selector string) (*model.Conversation, error) {
	if selector == "" {
		conv := snap.Active()
		if conv == nil {
			return nil, NewNotFoundError("conversation", "active")
		}
		return conv, nil
	}

	n, err := strconv.Atoi(selector)
	if err != nil || n < 1 {
		return nil, NewValidationError("conversation", fmt.Sprintf("%q is not a valid position (1 = newest)", selector))
	}
	if n > len(snap.Conversations) {
		return nil, NewNotFoundError("conversation", fmt.Sprintf("#%d (only %d exist)", n, len(snap.Conversations)))
	}
	return snap.Conversations[n-1], nil
}
