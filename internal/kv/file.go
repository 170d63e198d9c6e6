// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kv provides flat key-value persistence for parley.
package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileBackend stores all keys in a single JSON object file. Every Set
// and Delete rewrites the whole file atomically, so a crash leaves
// either the previous or the new complete state on disk.
type FileBackend struct {
	path   string
	mu     sync.Mutex
	data   map[string]json.RawMessage
	closed bool
}

// OpenFileBackend opens (or creates) the store file at path. A file
// that exists but does not parse as a JSON object is treated as empty;
// its content is replaced on the next write.
func OpenFileBackend(path string) (*FileBackend, error) {
	b := &FileBackend{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return b, nil
	}
	if err != nil {
		return nil, &BackendError{Op: "open", Err: err}
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &b.data); err != nil {
			// Corrupt store file degrades to empty.
			b.data = make(map[string]json.RawMessage)
		}
	}
	return b, nil
}

// Get returns the value stored under key.
func (b *FileBackend) Get(key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, &BackendError{Op: "get", Key: key, Err: ErrBackendClosed}
	}
	value, ok := b.data[key]
	if !ok {
		return nil, &BackendError{Op: "get", Key: key, Err: ErrKeyNotFound}
	}
	return value, nil
}

// Set stores value under key and rewrites the file.
func (b *FileBackend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return &BackendError{Op: "set", Key: key, Err: ErrBackendClosed}
	}
	if !json.Valid(value) {
		return &BackendError{Op: "set", Key: key, Err: fmt.Errorf("value is not valid JSON")}
	}

	prev, hadPrev := b.data[key]
	b.data[key] = json.RawMessage(value)
	if err := b.flush(); err != nil {
		// Keep the in-memory map consistent with what is on disk.
		if hadPrev {
			b.data[key] = prev
		} else {
			delete(b.data, key)
		}
		return &BackendError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes key and rewrites the file.
func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return &BackendError{Op: "delete", Key: key, Err: ErrBackendClosed}
	}
	if _, ok := b.data[key]; !ok {
		return nil
	}
	prev := b.data[key]
	delete(b.data, key)
	if err := b.flush(); err != nil {
		b.data[key] = prev
		return &BackendError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Close marks the backend closed. The file is already durable after
// every write, so there is nothing to flush.
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Path returns the store file location.
func (b *FileBackend) Path() string {
	return b.path
}

// flush writes the full map to disk. Caller holds the mutex.
func (b *FileBackend) flush() error {
	raw, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(b.path, raw, 0600)
}
