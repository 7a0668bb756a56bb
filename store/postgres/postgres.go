// Package postgres persists sessions as JSONB rows. One row per chat; the
// whole session document is replaced on every put, which matches the
// load-update-store cycle of the message pipeline.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mindberry/teplo/core/logger"
	"github.com/mindberry/teplo/engine/session"
)

// Store implements session.Store on top of a sessions table.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type row struct {
	ChatID    int64     `db:"chat_id"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Get loads and decodes the session document, (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, chatID int64) (*session.Session, error) {
	var r row
	err := s.db.GetContext(ctx, &r,
		`SELECT chat_id, data, updated_at FROM sessions WHERE chat_id = $1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get chat_id=%d: %w", chatID, err)
	}

	var sess session.Session
	if err := json.Unmarshal(r.Data, &sess); err != nil {
		// A corrupt document is unrecoverable; report it and let the
		// caller start the chat over.
		logger.Error(ctx, "store", "session.decode",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("session decode chat_id=%d: %w", chatID, err)
	}
	return &sess, nil
}

// Put upserts the session document.
func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode chat_id=%d: %w", sess.ChatID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (chat_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()`,
		sess.ChatID, data)
	if err != nil {
		return fmt.Errorf("session put chat_id=%d: %w", sess.ChatID, err)
	}
	return nil
}

// Delete removes the row; a missing row is fine.
func (s *Store) Delete(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("session delete chat_id=%d: %w", chatID, err)
	}
	return nil
}

// DigestChats lists chats that opted into the weekly digest. Used by the
// digest scheduler to fan out reports without loading every session.
func (s *Store) DigestChats(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.SelectContext(ctx, &ids,
		`SELECT chat_id FROM sessions WHERE (data->>'digest_enabled')::boolean ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("digest chats: %w", err)
	}
	return ids, nil
}
