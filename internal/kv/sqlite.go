// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides flat key-value persistence for parley.
package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SQLITE BACKEND
// =============================================================================

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

// SQLBackend stores keys in a single-table SQLite database. It carries
// the same contract as FileBackend; the database gives durability per
// statement instead of per-file rewrite.
type SQLBackend struct {
	db *sql.DB
}

// OpenSQLBackend opens (or creates) the database at path.
func OpenSQLBackend(path string) (*SQLBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &BackendError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &BackendError{Op: "open", Err: err}
	}

	// SQLite supports one writer at a time; a single connection avoids
	// lock contention entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &BackendError{Op: "open", Err: fmt.Errorf("failed to set pragma: %w", err)}
		}
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, &BackendError{Op: "open", Err: fmt.Errorf("failed to initialize schema: %w", err)}
	}

	return &SQLBackend{db: db}, nil
}

// Get returns the value stored under key.
func (b *SQLBackend) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &BackendError{Op: "get", Key: key, Err: ErrKeyNotFound}
	}
	if err != nil {
		return nil, &BackendError{Op: "get", Key: key, Err: err}
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (b *SQLBackend) Set(key string, value []byte) error {
	_, err := b.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return &BackendError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes key.
func (b *SQLBackend) Delete(key string) error {
	if _, err := b.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return &BackendError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Close closes the database.
func (b *SQLBackend) Close() error {
	return b.db.Close()
}
