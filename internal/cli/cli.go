// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for parley.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdPlain
	CmdModels
	CmdExport
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet    bool
	Verbose  bool
	Model    string
	Endpoint string
	JSON     bool // Output in JSON format

	// Command-specific
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --format, --output)
	Options map[string]string
}

const usageText = `parley - terminal client for chat services

Parley is a conversation-centric chat client for the command line.

It provides:
  - A full-screen TUI with a conversation sidebar and model picker
  - A plain line-based REPL for dumb terminals and scripting
  - Persistent conversation history (file or sqlite backend)
  - Markdown rendering of replies with syntax-highlighted code blocks

Usage:
  parley                       Start TUI (default)
  parley plain                 Line-based REPL (no alternate screen)
  parley models                List available models
  parley export [n]            Export a conversation transcript
    --format md|json           Export format (default: md)
    --output DIR               Output directory (default: ./exports)
  parley config [show|set]     Configuration
  parley config set <key> <v>  Set a configuration value
  parley config path           Show config file location
  parley version               Show version information
  parley help                  Show this help

Config Keys:
  server.endpoint      Chat service URL
  server.timeout_secs  Request timeout in seconds
  storage.backend      Persistence backend (file/sqlite)
  storage.path         Store location override
  ui.theme             Color theme (dark/light)
  ui.sidebar_width     Sidebar width in columns
  ui.show_timestamps   Per-message timestamps (true/false)
  ui.markdown_width    Wrap width for rendered replies
  log.enabled          File logging (true/false)
  log.level            Log level (debug/info/warn/error)

Global Flags:
  -q, --quiet       Minimal output
  -v, --verbose     Debug output
  --model NAME      Override the persisted model selection
  --endpoint URL    Override the configured chat endpoint
  --json            Output in JSON format

Examples:
  parley                              Start TUI interface
  parley plain                        REPL over a plain terminal
  parley plain --model gpt-5.2        REPL with a specific model
  parley models --json                Model catalog as JSON
  parley export 1 --format json       Export newest conversation as JSON
  parley config show                  Show current configuration
  parley config set ui.theme light    Switch to the light theme
  parley config set storage.backend sqlite
  parley --endpoint http://host:8000/chat

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("parley version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	// Check first argument for command
	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "plain", "repl", "chat":
		return CmdPlain, parsedArgs

	case "models", "model-list":
		return CmdModels, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command, default to TUI. Restore the token since it
		// might be meaningful to a future subcommand.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--model", "-m":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--endpoint":
			if i+1 < len(args) {
				i++
				parsedArgs.Endpoint = args[i]
			}
		default:
			// Check for --flag=value forms
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--endpoint="):
				parsedArgs.Endpoint = strings.TrimPrefix(arg, "--endpoint=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--format" && i+1 < len(remaining):
			args.Options["format"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			args.Options["format"] = strings.TrimPrefix(arg, "--format=")
		case arg == "--output" && i+1 < len(remaining):
			args.Options["output"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--output="):
			args.Options["output"] = strings.TrimPrefix(arg, "--output=")
		case !strings.HasPrefix(arg, "-") && args.Subcommand == "":
			// Positional conversation index (1 = newest)
			args.Subcommand = arg
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandlePlain handles the "plain" command.
// This delegates to the full implementation in plain.go.
func HandlePlain(args Args) {
	if err := HandlePlainCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// NOTE: HandleModels is implemented in models.go
// NOTE: HandleExport is implemented in export_cmd.go
// NOTE: HandleConfig is implemented in config_cmd.go

// VersionData holds version information for JSON output.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleVersionWithJSON handles the "version" command with JSON output support.
func HandleVersionWithJSON(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
