package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

// HistoryRepository appends conversation turns to the messages table:
//
//	CREATE TABLE messages (
//	    id         BIGSERIAL PRIMARY KEY,
//	    session_id TEXT NOT NULL,
//	    message    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) StoreMessage(ctx context.Context, sessionID string, msg model.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO messages (session_id, message)
		VALUES ($1, $2)
	`, sessionID, payload)
	if err != nil {
		return fmt.Errorf("inserting message for session %s: %w", sessionID, err)
	}
	return nil
}

// NopHistoryRepository drops every message. Used when no database is configured.
type NopHistoryRepository struct{}

func (NopHistoryRepository) StoreMessage(ctx context.Context, sessionID string, msg model.Message) error {
	return nil
}
