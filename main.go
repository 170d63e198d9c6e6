// parley - A terminal client for chat services.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdPlain:
		cli.HandlePlain(args)
	case cli.CmdModels:
		cli.HandleErrorAndExit(cli.HandleModels(args))
	case cli.CmdExport:
		cli.HandleErrorAndExit(cli.HandleExport(args))
	case cli.CmdConfig:
		cli.HandleErrorAndExit(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersionWithJSON(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	logger, closeLog := cli.NewLogger(cfg)
	defer closeLog()

	st, closeStore, err := cli.OpenStore(cfg, logger)
	if err != nil {
		cli.HandleErrorAndExit(err)
	}
	defer closeStore()

	client := cli.NewChatClient(cfg, args)

	// --model overrides the persisted selection
	if args.Model != "" {
		info, ok := model.LookupModel(args.Model)
		if !ok {
			cli.HandleErrorAndExit(cli.NewValidationError("model",
				fmt.Sprintf("unknown model %q (see: parley models)", args.Model)))
		}
		st.SetModel(info.ID)
	}

	m := chat.New(st, client, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Hot-reload config edits while the TUI is running
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, werr := config.NewWatcher(func(newCfg *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Config: newCfg})
	}); werr == nil {
		if serr := watcher.Start(ctx); serr == nil {
			defer watcher.Stop()
			logger.Debug("config watcher started")
		}
	} else {
		logger.Warn("config watcher unavailable", "error", werr)
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running parley: %v\n", err)
		os.Exit(1)
	}
}
