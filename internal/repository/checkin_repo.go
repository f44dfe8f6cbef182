package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mindful_companion/internal/models"

	"github.com/google/uuid"
)

type CheckInSQLite struct {
	db *sql.DB
}

func NewCheckInSQLite(db *sql.DB) *CheckInSQLite { return &CheckInSQLite{db: db} }

const (
	insertCheckInSQL = `INSERT INTO checkins (id, user_id, mood, notes, created_at) VALUES (?, ?, ?, ?, ?)`
	// newest first
	selectCheckInsSQL = `SELECT id, user_id, mood, notes, created_at FROM checkins WHERE user_id = ? ORDER BY created_at DESC`
)

// Create stores a check-in. Missing ID and timestamp are filled in.
func (r *CheckInSQLite) Create(ctx context.Context, c models.CheckIn) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if _, err := r.db.ExecContext(ctx, insertCheckInSQL, c.ID, c.UserID, c.Mood, c.Notes, c.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert check-in for user %d: %w", c.UserID, err)
	}
	return nil
}

// ListByUser returns the user's check-ins, newest first.
func (r *CheckInSQLite) ListByUser(ctx context.Context, userID int) ([]models.CheckIn, error) {
	rows, err := r.db.QueryContext(ctx, selectCheckInsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select check-ins for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.CheckIn, 0, 32)
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.Mood, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
