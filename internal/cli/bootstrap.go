// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// bootstrap.go - Shared wiring from config to live store and client.
//
// Both the TUI entry point and the plain REPL open the same stack:
// config -> key-value backend -> adapter -> store.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/kv"
	"github.com/jeranaias/parley-tui/internal/store"
)

// NewLogger builds the application logger from config.
// Logging is file-based so it never corrupts the TUI's screen. When
// disabled, a discard logger is returned so call sites stay unconditional.
func NewLogger(cfg *config.Config) (*slog.Logger, func()) {
	if cfg == nil || !cfg.Log.Enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	path, err := cfg.LogPath()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }
}

// OpenBackend opens the configured key-value backend.
func OpenBackend(cfg *config.Config) (kv.Backend, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, NewCommandError(ExitStorageError, "failed to create config directory", err)
	}

	path, err := cfg.StorePath()
	if err != nil {
		return nil, NewCommandError(ExitStorageError, "failed to resolve store path", err)
	}

	switch cfg.Storage.Backend {
	case "", "file":
		return kv.OpenFileBackend(path)
	case "sqlite":
		return kv.OpenSQLBackend(path)
	default:
		return nil, NewValidationError("storage.backend",
			fmt.Sprintf("unknown backend %q (expected file or sqlite)", cfg.Storage.Backend))
	}
}

// OpenStore opens the configured backend and loads the conversation store.
// The returned cleanup closes the backend and must run after the last write.
func OpenStore(cfg *config.Config, logger *slog.Logger) (*store.Store, func(), error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, nil, err
	}

	st := store.New(kv.NewAdapter(backend, logger))
	if err := st.Initialize(); err != nil {
		backend.Close()
		return nil, nil, NewCommandError(ExitStorageError, "failed to load conversations", err)
	}

	return st, func() { backend.Close() }, nil
}

// NewChatClient builds the API client for the configured endpoint,
// honoring the --endpoint override and the configured timeout.
func NewChatClient(cfg *config.Config, args Args) *api.Client {
	endpoint := cfg.Server.Endpoint
	if args.Endpoint != "" {
		endpoint = args.Endpoint
	}

	client := api.NewClient(endpoint)
	if cfg.Server.TimeoutSecs > 0 {
		client = client.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		})
	}
	return client
}
