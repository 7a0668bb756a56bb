package session

import "context"

// Store abstracts where sessions live. The engine never touches a store;
// it is injected into the bot layer, which loads a session, runs the
// engine's update pipeline on it, and puts it back.
type Store interface {
	// Get returns the session for a chat, or (nil, nil) when none exists.
	Get(ctx context.Context, chatID int64) (*Session, error)
	// Put inserts or replaces the session.
	Put(ctx context.Context, s *Session) error
	// Delete removes the session; deleting a missing session is not an error.
	Delete(ctx context.Context, chatID int64) error
	// DigestChats lists chats that opted into the weekly digest, sorted by id.
	DigestChats(ctx context.Context) ([]int64, error)
}
