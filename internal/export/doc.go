// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export functionality for parley.
//
// This package supports exporting conversations to Markdown and JSON
// with metadata and optional opening in external applications.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - MarkdownExporter, JSONExporter: Format implementations
//   - Options: Export configuration options
//
// # Supported Formats
//
//   - JSON: Machine-readable with full data
//   - Markdown: Human-readable with YAML frontmatter
//
// # Usage
//
// Export a conversation:
//
//	path, err := export.ExportMarkdown(conv, export.DefaultOptions())
//
// Or with a custom exporter:
//
//	path, err := export.ExportToFile(conv, export.NewJSONExporter(nil), opts)
package export
