package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mindful_companion/internal/models"

	"github.com/google/uuid"
)

type JournalSQLite struct {
	db *sql.DB
}

func NewJournalSQLite(db *sql.DB) *JournalSQLite { return &JournalSQLite{db: db} }

const (
	insertJournalSQL = `INSERT INTO journal_entries (id, user_id, title, content, created_at) VALUES (?, ?, ?, ?, ?)`
	selectJournalSQL = `SELECT id, user_id, title, content, created_at FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC`
)

// Create stores a journal entry. Missing ID and timestamp are filled in.
func (r *JournalSQLite) Create(ctx context.Context, e models.JournalEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if _, err := r.db.ExecContext(ctx, insertJournalSQL, e.ID, e.UserID, e.Title, e.Content, e.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert journal entry for user %d: %w", e.UserID, err)
	}
	return nil
}

// ListByUser returns the user's entries, newest first.
func (r *JournalSQLite) ListByUser(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectJournalSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select journal entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.JournalEntry, 0, 32)
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
