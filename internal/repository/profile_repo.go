package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mindful_companion/internal/models"
)

type ProfileSQLite struct {
	db *sql.DB
}

func NewProfileSQLite(db *sql.DB) *ProfileSQLite {
	return &ProfileSQLite{db: db}
}

const (
	upsertProfileSQL = `
		INSERT INTO profiles (user_id, display_name, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name=excluded.display_name,
			updated_at=excluded.updated_at
	`
	selectProfileSQL = `
		SELECT u.id, u.username, u.is_anonymous, p.display_name, p.updated_at
		FROM users u LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = ?
	`
)

// Save upserts the user's display name.
func (r *ProfileSQLite) Save(ctx context.Context, userID int, displayName string, updatedAt time.Time) error {
	// ensure UpdatedAt is always persisted as UTC; set if zero
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	} else {
		updatedAt = updatedAt.UTC()
	}

	if _, err := r.db.ExecContext(ctx, upsertProfileSQL, userID, displayName, updatedAt); err != nil {
		return fmt.Errorf("save profile for user %d: %w", userID, err)
	}
	return nil
}

// Load returns the user's profile. The zero value means the user does not exist;
// a user without a saved profile gets an empty display name.
func (r *ProfileSQLite) Load(ctx context.Context, userID int) (models.Profile, error) {
	var (
		p           models.Profile
		displayName sql.NullString
		updatedAt   sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, selectProfileSQL, userID).
		Scan(&p.UserID, &p.Login, &p.IsAnonymous, &displayName, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, nil
		}
		return models.Profile{}, fmt.Errorf("load profile for user %d: %w", userID, err)
	}

	p.DisplayName = displayName.String
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time.UTC()
	}
	return p, nil
}
