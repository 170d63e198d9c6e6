// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Endpoint != "http://localhost:8000/chat" {
		t.Errorf("unexpected default endpoint: %s", cfg.Server.Endpoint)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("unexpected default backend: %s", cfg.Storage.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Server.Endpoint = "http://example.com:9000/chat"
	cfg.UI.Theme = "light"
	cfg.UI.SidebarWidth = 40

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	// 0600 permissions on saved file
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded.Server.Endpoint != "http://example.com:9000/chat" {
		t.Errorf("endpoint not preserved: %s", loaded.Server.Endpoint)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme not preserved: %s", loaded.UI.Theme)
	}
	if loaded.UI.SidebarWidth != 40 {
		t.Errorf("sidebar width not preserved: %d", loaded.UI.SidebarWidth)
	}
}

func TestSaveTOMLWritesHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := SaveTOML(Default(), path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "# parley configuration file") {
		t.Errorf("expected header comment, got: %.60s", string(data))
	}
}

func TestLoadFromPathPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	// Only the endpoint is set; everything else should default.
	partial := "[server]\nendpoint = \"http://host:1234/chat\"\n"
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Endpoint != "http://host:1234/chat" {
		t.Errorf("endpoint not loaded: %s", cfg.Server.Endpoint)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("backend should default to file, got %s", cfg.Storage.Backend)
	}
	if cfg.UI.SidebarWidth != 32 {
		t.Errorf("sidebar width should default, got %d", cfg.UI.SidebarWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty endpoint",
			mutate:  func(c *Config) { c.Server.Endpoint = "" },
			wantErr: "server.endpoint",
		},
		{
			name:    "bad endpoint URL",
			mutate:  func(c *Config) { c.Server.Endpoint = "not a url" },
			wantErr: "server.endpoint",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.TimeoutSecs = -1 },
			wantErr: "server.timeout_secs",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "storage.backend",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
		{
			name:    "sidebar too narrow",
			mutate:  func(c *Config) { c.UI.SidebarWidth = 5 },
			wantErr: "ui.sidebar_width",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_ENDPOINT", "http://env-host:7777/chat")
	t.Setenv("PARLEY_STORAGE", "sqlite")
	t.Setenv("PARLEY_STORE_PATH", "/tmp/parley-test.db")
	t.Setenv("PARLEY_TIMEOUT_SECS", "45")
	t.Setenv("PARLEY_LOG", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.Endpoint != "http://env-host:7777/chat" {
		t.Errorf("endpoint override not applied: %s", cfg.Server.Endpoint)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend override not applied: %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/tmp/parley-test.db" {
		t.Errorf("store path override not applied: %s", cfg.Storage.Path)
	}
	if cfg.Server.TimeoutSecs != 45 {
		t.Errorf("timeout override not applied: %d", cfg.Server.TimeoutSecs)
	}
	if !cfg.Log.Enabled {
		t.Error("log override not applied")
	}
}

func TestApplyEnvOverridesIgnoresBadTimeout(t *testing.T) {
	t.Setenv("PARLEY_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.TimeoutSecs != 120 {
		t.Errorf("bad timeout should keep default, got %d", cfg.Server.TimeoutSecs)
	}
}

func TestStorePath(t *testing.T) {
	cfg := Default()

	cfg.Storage.Path = "/custom/store.json"
	path, err := cfg.StorePath()
	if err != nil {
		t.Fatalf("StorePath failed: %v", err)
	}
	if path != "/custom/store.json" {
		t.Errorf("override not honored: %s", path)
	}

	cfg.Storage.Path = ""
	cfg.Storage.Backend = "sqlite"
	path, err = cfg.StorePath()
	if err != nil {
		t.Fatalf("StorePath failed: %v", err)
	}
	if filepath.Base(path) != "store.db" {
		t.Errorf("sqlite backend should use store.db, got %s", path)
	}
}

// TestConfig_ConcurrentAccess verifies that Global() and SetGlobal()
// can be safely called concurrently.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}
