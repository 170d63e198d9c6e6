// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements parley's command-line surface: argument
// parsing, the plain-terminal REPL, and the non-interactive commands
// (models, export, config, version).
//
// Parsing is hand-rolled rather than flag-package based so global
// flags can appear anywhere on the line and commands keep short,
// scriptable forms. Parse returns a Command plus an Args snapshot;
// main dispatches on the Command.
//
// Output discipline: human-readable text goes to stdout with lipgloss
// styling when stdout is a TTY, plain text otherwise. With --json,
// every command emits the standardized JSONResponse envelope instead.
// Errors go to stderr and map to exit codes via GetExitCode.
package cli
