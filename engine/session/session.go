// Package session owns the per-user state the engine operates on: one
// emotional memory, one emotional state, one therapy context, plus the
// conversational extras the bot layer needs (history, tone preference).
//
// The engine itself is session-agnostic: every operation takes one session
// and the caller decides where sessions live via the Store interface.
// None of the update operations tolerate concurrent read-modify-write;
// callers must serialize access per session.
package session

import (
	"time"

	"github.com/mindberry/teplo/engine/adapt"
	"github.com/mindberry/teplo/engine/memory"
	"github.com/mindberry/teplo/engine/state"
	"github.com/mindberry/teplo/engine/therapy"
)

// historyLimit bounds the chat history ring kept for prompt context.
const historyLimit = 20

// ChatMessage is one turn of the dialogue kept for the response generator.
type ChatMessage struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Session is the aggregate root for one chat. It owns its memory, state and
// therapy context exclusively; nothing is shared across sessions.
type Session struct {
	ChatID    int64     `json:"chat_id"`
	StartedAt time.Time `json:"started_at"`

	Memory  *memory.Memory  `json:"memory"`
	State   *state.State    `json:"state,omitempty"`
	Therapy therapy.Context `json:"therapy"`

	TonePreference adapt.Tone    `json:"tone_preference,omitempty"`
	DigestEnabled  bool          `json:"digest_enabled"`
	History        []ChatMessage `json:"history,omitempty"`
}

// New creates an empty session for a chat.
func New(chatID int64, now time.Time) *Session {
	return &Session{
		ChatID:    chatID,
		StartedAt: now,
		Memory:    memory.New(),
		Therapy:   therapy.NewContext(now),
	}
}

// AppendHistory records one dialogue turn and trims the ring.
func (s *Session) AppendHistory(role, content string, now time.Time) {
	s.History = append(s.History, ChatMessage{Role: role, Content: content, SentAt: now})
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}

// RecentHistory returns up to n latest turns, oldest first.
func (s *Session) RecentHistory(n int) []ChatMessage {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}
