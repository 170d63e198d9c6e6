// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for parley.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set a configuration value
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   parley config                          Show current config (default)
//   parley config show --json              Config in JSON format
//   parley config set server.endpoint http://host:8000/chat
//   parley config set storage.backend sqlite
//   parley config set ui.theme light
//   parley config set ui.sidebar_width 40
//   parley config set log.enabled true
//   parley config reset                    Reset to defaults
//   parley config path                     Show config file location
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	configTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.Cyan).
				MarginBottom(1)

	configSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.TextPrimary).
				MarginTop(1)

	configKeyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(20)

	configValueStyle = lipgloss.NewStyle().
				Foreground(styles.Emerald)

	configPathStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Italic(true)
)

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			return handleConfigShowJSON()
		}
		return handleConfigShow()

	case "set":
		return handleConfigSet(args.ConfigKey, args.ConfigVal)

	case "reset":
		return handleConfigReset()

	case "path":
		if args.JSON {
			return handleConfigPathJSON()
		}
		return handleConfigPath()

	default:
		return NewValidationError("subcommand", fmt.Sprintf("unknown config subcommand: %s", args.Subcommand))
	}
}

// ConfigData mirrors the config layout for JSON output.
type ConfigData struct {
	Server  config.ServerConfig  `json:"server"`
	Storage config.StorageConfig `json:"storage"`
	UI      config.UIConfig      `json:"ui"`
	Log     config.LogConfig     `json:"log"`
	Path    string               `json:"path"`
}

func handleConfigShowJSON() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	path, _ := config.ConfigPath()
	data := ConfigData{
		Server:  cfg.Server,
		Storage: cfg.Storage,
		UI:      cfg.UI,
		Log:     cfg.Log,
		Path:    path,
	}

	resp := NewJSONResponse("config show", data)
	return resp.Print()
}

func handleConfigPathJSON() error {
	path, _ := config.ConfigPath()
	_, err := os.Stat(path)
	exists := !os.IsNotExist(err)

	data := map[string]interface{}{
		"path":   path,
		"exists": exists,
	}

	resp := NewJSONResponse("config path", data)
	return resp.Print()
}

// handleConfigShow displays the current configuration.
func handleConfigShow() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	printPair := func(key, value string) {
		fmt.Printf("  %s%s\n", configKeyStyle.Render(key+":"), configValueStyle.Render(value))
	}

	separator := strings.Repeat("=", 41)
	fmt.Println()
	fmt.Println(configTitleStyle.Render("parley Configuration"))
	fmt.Println(SeparatorStyle.Render(separator))
	fmt.Println()

	fmt.Println(configSectionStyle.Render("[server]"))
	printPair("endpoint", cfg.Server.Endpoint)
	printPair("timeout_secs", strconv.Itoa(cfg.Server.TimeoutSecs))
	fmt.Println()

	fmt.Println(configSectionStyle.Render("[storage]"))
	printPair("backend", cfg.Storage.Backend)
	storePath := cfg.Storage.Path
	if storePath == "" {
		if p, err := cfg.StorePath(); err == nil {
			storePath = p + " (default)"
		}
	}
	printPair("path", storePath)
	fmt.Println()

	fmt.Println(configSectionStyle.Render("[ui]"))
	printPair("theme", cfg.UI.Theme)
	printPair("sidebar_width", strconv.Itoa(cfg.UI.SidebarWidth))
	printPair("show_timestamps", strconv.FormatBool(cfg.UI.ShowTimestamps))
	printPair("markdown_width", strconv.Itoa(cfg.UI.MarkdownWidth))
	fmt.Println()

	fmt.Println(configSectionStyle.Render("[log]"))
	printPair("enabled", strconv.FormatBool(cfg.Log.Enabled))
	printPair("level", cfg.Log.Level)
	fmt.Println()

	path, _ := config.ConfigPath()
	fmt.Println(SeparatorStyle.Render(strings.Repeat("-", 41)))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(path))
	fmt.Println()

	return nil
}

// handleConfigSet sets a configuration value.
func handleConfigSet(key, value string) error {
	if key == "" {
		return NewValidationError("key", "no config key provided\nUsage: parley config set <key> <value>")
	}
	if value == "" {
		return NewValidationError("value", fmt.Sprintf("no config value provided\nUsage: parley config set %s <value>", key))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	// Accept both dot and underscore notation
	key = strings.ToLower(key)
	normalized := strings.ReplaceAll(key, "_", ".")

	switch normalized {
	case "server.endpoint", "endpoint":
		cfg.Server.Endpoint = value

	case "server.timeout.secs", "timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return NewValidationError(key, "must be a non-negative integer")
		}
		cfg.Server.TimeoutSecs = n

	case "storage.backend", "backend":
		v := strings.ToLower(value)
		if v != "file" && v != "sqlite" {
			return NewValidationError(key, fmt.Sprintf("invalid backend %q (valid: file, sqlite)", value))
		}
		cfg.Storage.Backend = v

	case "storage.path":
		cfg.Storage.Path = value

	case "ui.theme", "theme":
		v := strings.ToLower(value)
		if v != "dark" && v != "light" {
			return NewValidationError(key, fmt.Sprintf("invalid theme %q (valid: dark, light)", value))
		}
		cfg.UI.Theme = v

	case "ui.sidebar.width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 10 {
			return NewValidationError(key, "must be an integer of at least 10")
		}
		cfg.UI.SidebarWidth = n

	case "ui.show.timestamps":
		cfg.UI.ShowTimestamps = parseBool(value)

	case "ui.markdown.width":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinTerminalWidth {
			return NewValidationError(key, fmt.Sprintf("must be an integer of at least %d", MinTerminalWidth))
		}
		cfg.UI.MarkdownWidth = n

	case "log.enabled":
		cfg.Log.Enabled = parseBool(value)

	case "log.path":
		cfg.Log.Path = value

	case "log.level":
		v := strings.ToLower(value)
		switch v {
		case "debug", "info", "warn", "error":
			cfg.Log.Level = v
		default:
			return NewValidationError(key, fmt.Sprintf("invalid level %q (valid: debug, info, warn, error)", value))
		}

	default:
		return NewValidationError("key", fmt.Sprintf("unknown config key: %s\n\nValid keys:\n"+
			"  server.endpoint     - Chat service URL\n"+
			"  server.timeout_secs - Request timeout in seconds\n"+
			"  storage.backend     - Persistence backend (file/sqlite)\n"+
			"  storage.path        - Store location override\n"+
			"  ui.theme            - Color theme (dark/light)\n"+
			"  ui.sidebar_width    - Sidebar width in columns\n"+
			"  ui.show_timestamps  - Per-message timestamps (true/false)\n"+
			"  ui.markdown_width   - Wrap width for rendered replies\n"+
			"  log.enabled         - File logging (true/false)\n"+
			"  log.path            - Log file override\n"+
			"  log.level           - Log level (debug/info/warn/error)", key))
	}

	// Validate the updated config before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}

	if err := config.Save(cfg); err != nil {
		return NewCommandError(ExitConfigError, "failed to save config", err)
	}

	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}

// handleConfigReset resets configuration to defaults.
func handleConfigReset() error {
	cfg := config.Default()

	if err := config.Save(cfg); err != nil {
		return NewCommandError(ExitConfigError, "failed to save config", err)
	}

	path, _ := config.ConfigPath()
	fmt.Printf("%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(path))
	return nil
}

// handleConfigPath shows the config file path.
func handleConfigPath() error {
	path, err := config.ConfigPath()
	if err != nil {
		return NewCommandError(ExitConfigError, "failed to resolve config path", err)
	}
	fmt.Println(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "%s (file does not exist - will be created on first use)\n",
			DimStyle.Render("Note"))
	}
	return nil
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
