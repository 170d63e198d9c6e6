// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models.go - Model catalog listing.
//
// Command: models
// Short:   List available models
//
// Flags:
//   --json   Output in JSON format
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/model"
)

// ModelEntry is one catalog row for JSON output.
type ModelEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Default  bool   `json:"default"`
}

// HandleModels handles the "models" command.
func HandleModels(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	// The persisted selection lives in the store, not the config file.
	selected := model.DefaultModel
	logger, closeLog := NewLogger(cfg)
	defer closeLog()
	if st, closeStore, err := OpenStore(cfg, logger); err == nil {
		selected = st.Model()
		closeStore()
	}

	if args.JSON {
		entries := make([]ModelEntry, 0, len(model.Catalog))
		for _, info := range model.Catalog {
			entries = append(entries, ModelEntry{
				ID:       info.ID,
				Name:     info.Name,
				Selected: info.ID == selected,
				Default:  info.ID == model.DefaultModel,
			})
		}
		resp := NewJSONResponse("models", entries)
		return resp.Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("Available models"))
	fmt.Println()
	for _, info := range model.Catalog {
		marker := "  "
		if info.ID == selected {
			marker = SuccessStyle.Render("* ")
		}
		fmt.Printf("%s%-24s %s\n", marker, info.ID, DimStyle.Render(info.Name))
	}
	fmt.Println()
	fmt.Println(DimStyle.Render("* = current selection (switch with: parley plain --model ID)"))
	fmt.Println()
	return nil
}
