// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the in-memory conversation list and the active
// conversation selection.
package store

import (
	"errors"

	"github.com/jeranaias/parley-tui/internal/kv"
	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("store already initialized")

	// ErrNotInitialized indicates a mutation before Initialize.
	ErrNotInitialized = errors.New("store not initialized")
)

// =============================================================================
// LIFECYCLE STATE
// =============================================================================

// State tracks the store lifecycle.
type State int

const (
	// StateUninitialized is the state before Initialize.
	StateUninitialized State = iota

	// StateReady accepts mutations.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the conversation list, the active conversation id, and
// the selected model. All mutation goes through its methods.
type Store struct {
	adapter *kv.Adapter

	state         State
	conversations []*model.Conversation
	activeID      string
	selectedModel string

	subscribers []func()
}

// New creates an uninitialized store over the given adapter.
func New(adapter *kv.Adapter) *Store {
	return &Store{
		adapter:       adapter,
		selectedModel: model.DefaultModel,
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	return s.state
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// Initialize loads persisted conversations and the model selection. If
// nothing is persisted, one empty conversation is synthesized. The
// first (newest) conversation becomes active. Initialize runs exactly
// once and performs no persistence write of its own; re-persisting
// freshly loaded data would be a pointless rewrite.
func (s *Store) Initialize() error {
	if s.state != StateUninitialized {
		return ErrAlreadyInitialized
	}

	if modelID, ok := s.adapter.LoadModel(); ok {
		s.selectedModel = modelID
	}

	s.conversations = s.adapter.LoadConversations()
	if len(s.conversations) == 0 {
		conv := model.NewConversation(s.selectedModel)
		s.conversations = []*model.Conversation{conv}
	}
	s.activeID = s.conversations[0].ID

	s.state = StateReady
	s.notify()
	return nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// NewConversation creates an empty conversation for the selected model,
// prepends it so it is newest, and makes it active. Returns the id of
// the new conversation, or empty before Initialize.
func (s *Store) NewConversation() string {
	if s.state != StateReady {
		return ""
	}

	conv := model.NewConversation(s.selectedModel)
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID

	s.persist()
	s.notify()
	return conv.ID
}

// SelectConversation makes the identified conversation active. Unknown
// ids are ignored; the list is never mutated. The selection itself is
// not persisted, only which conversations exist.
func (s *Store) SelectConversation(id string) {
	if s.state != StateReady || s.activeID == id {
		return
	}
	if s.find(id) == -1 {
		return
	}
	s.activeID = id
	s.notify()
}

// DeleteConversation removes the identified conversation. If it was
// active and others remain, the first remaining conversation in the
// current list order becomes active. Deleting the last conversation
// synthesizes a replacement, so the list is never left empty.
func (s *Store) DeleteConversation(id string) {
	if s.state != StateReady {
		return
	}
	idx := s.find(id)
	if idx == -1 {
		return
	}

	wasActive := s.activeID == id
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)

	if len(s.conversations) == 0 {
		conv := model.NewConversation(s.selectedModel)
		s.conversations = []*model.Conversation{conv}
		s.activeID = conv.ID
	} else if wasActive {
		s.activeID = s.conversations[0].ID
	}

	s.persist()
	s.notify()
}

// AppendMessage appends a message to the identified conversation.
// Appending to an unknown id is a no-op; correct callers never do it.
func (s *Store) AppendMessage(conversationID string, msg *model.Message) {
	if s.state != StateReady {
		return
	}
	idx := s.find(conversationID)
	if idx == -1 {
		return
	}

	s.conversations[idx].AddMessage(msg)
	s.persist()
	s.notify()
}

// RenameConversation sets an explicit title on the identified
// conversation, replacing any derived or default title.
func (s *Store) RenameConversation(id, title string) {
	if s.state != StateReady || title == "" {
		return
	}
	idx := s.find(id)
	if idx == -1 {
		return
	}

	s.conversations[idx].Title = title
	s.persist()
	s.notify()
}

// SetModel updates the selected model. The selection is persisted under
// its own key, independent of conversation data.
func (s *Store) SetModel(modelID string) {
	if s.state != StateReady || modelID == "" || modelID == s.selectedModel {
		return
	}
	s.selectedModel = modelID
	s.adapter.SaveModel(modelID)
	s.notify()
}

// =============================================================================
// OBSERVATION
// =============================================================================

// Snapshot is an immutable view of the store for rendering. The
// conversations are deep copies; holding or mutating them never
// affects the store.
type Snapshot struct {
	Conversations []*model.Conversation
	ActiveID      string
	Model         string
}

// Active returns the active conversation within the snapshot, or nil.
func (snap Snapshot) Active() *model.Conversation {
	for _, conv := range snap.Conversations {
		if conv.ID == snap.ActiveID {
			return conv
		}
	}
	return nil
}

// Snapshot returns the current state as deep copies.
func (s *Store) Snapshot() Snapshot {
	convs := make([]*model.Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		convs[i] = conv.Clone()
	}
	return Snapshot{
		Conversations: convs,
		ActiveID:      s.activeID,
		Model:         s.selectedModel,
	}
}

// ActiveID returns the active conversation id.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Model returns the selected model id.
func (s *Store) Model() string {
	return s.selectedModel
}

// Subscribe registers a change callback, invoked after every state
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		s.subscribers[idx] = nil
	}
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// find returns the list index of the conversation with the given id.
func (s *Store) find(id string) int {
	for i, conv := range s.conversations {
		if conv.ID == id {
			return i
		}
	}
	return -1
}

// persist rewrites the full conversation list. The adapter contains
// any failure; durability is best-effort.
func (s *Store) persist() {
	s.adapter.SaveConversations(s.conversations)
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		if fn != nil {
			fn()
		}
	}
}
