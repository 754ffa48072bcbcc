// Package session keeps per-conversation chat history behind a pluggable Store.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session id has no stored history.
var ErrNotFound = errors.New("session not found")

// Roles used in stored history. Clients send "bot" for assistant turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleBot       = "bot"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"type"`
	Content string `json:"text"`
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool { return m.Role == RoleUser }

// Store persists conversation history by session id.
// Implementations are safe for concurrent use; concurrent writes to one id are last-write-wins.
type Store interface {
	// Get returns the history for id, or ErrNotFound.
	Get(ctx context.Context, id string) ([]Message, error)
	// Put replaces the history for id.
	Put(ctx context.Context, id string, history []Message) error
	// Delete removes the history for id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// Reset clears the history for id, leaving an empty session in place.
	Reset(ctx context.Context, id string) error
	// Close releases backend resources.
	Close() error
}

// Load returns the history for id, treating an unknown session as empty.
func Load(ctx context.Context, s Store, id string) ([]Message, error) {
	h, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return []Message{}, nil
	}
	return h, err
}

// Trim keeps the newest maxMessages entries. A non-positive limit keeps everything.
func Trim(history []Message, maxMessages int) []Message {
	if maxMessages <= 0 || len(history) <= maxMessages {
		return history
	}
	return append([]Message(nil), history[len(history)-maxMessages:]...)
}
