// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package archive persists confirmed chat exchanges to a local SQLite
// database, so transcripts survive backend resets and can be read offline
// with the history command.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/godbot-tui/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL,
	role         TEXT NOT NULL,
	content      TEXT NOT NULL,
	persona_id   TEXT,
	timestamp    TEXT NOT NULL,
	fusion_mode  TEXT,
	models_used  TEXT,
	credits_used REAL
);

CREATE INDEX IF NOT EXISTS idx_messages_session
	ON messages(session_id, timestamp);
`

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive is the local transcript store. Safe for concurrent use; SQLite
// serializes writers internally.
type Archive struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// RecordExchange stores a confirmed user/assistant pair in one transaction.
// Replays of the same exchange (same message ids) are ignored.
func (a *Archive) RecordExchange(ctx context.Context, user, assistant model.Message) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, msg := range []model.Message{user, assistant} {
		if err := insertMessage(ctx, tx, msg); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertMessage(ctx context.Context, tx *sql.Tx, msg model.Message) error {
	_, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages
			(id, session_id, role, content, persona_id, timestamp, fusion_mode, models_used, credits_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.SessionID,
		string(msg.Role),
		msg.Content,
		msg.PersonaID,
		msg.Timestamp.UTC().Format(time.RFC3339Nano),
		msg.FusionMode,
		strings.Join(msg.ModelsUsed, ","),
		msg.CreditsUsed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
	}
	return nil
}

// SessionTranscript returns the archived messages for a session in
// chronological order.
func (a *Archive) SessionTranscript(ctx context.Context, sessionID string) ([]model.Message, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, persona_id, timestamp, fusion_mode, models_used, credits_used
		FROM messages
		WHERE session_id = ?
		ORDER BY timestamp ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func scanMessage(rows *sql.Rows) (model.Message, error) {
	var (
		msg       model.Message
		role      string
		ts        string
		models    sql.NullString
		fusion    sql.NullString
		personaID sql.NullString
		credits   sql.NullFloat64
	)
	if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &personaID, &ts, &fusion, &models, &credits); err != nil {
		return model.Message{}, fmt.Errorf("failed to scan message: %w", err)
	}
	msg.Role = model.Role(role)
	msg.PersonaID = personaID.String
	msg.FusionMode = fusion.String
	msg.CreditsUsed = credits.Float64
	if models.String != "" {
		msg.ModelsUsed = strings.Split(models.String, ",")
	}
	if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		msg.Timestamp = parsed
	}
	return msg, nil
}

// SessionSummary is one row of the archived-session listing.
type SessionSummary struct {
	SessionID string
	Messages  int
	Last      time.Time
}

// Sessions lists archived sessions, most recently active first.
func (a *Archive) Sessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT session_id, COUNT(*), MAX(timestamp)
		FROM messages
		GROUP BY session_id
		ORDER BY MAX(timestamp) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var (
			s  SessionSummary
			ts string
		)
		if err := rows.Scan(&s.SessionID, &s.Messages, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan session summary: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			s.Last = parsed
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
