package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mindful_companion/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

// ErrNotAnonymous is returned when linking credentials to an already registered user.
var ErrNotAnonymous = errors.New("user is not anonymous")

// ErrUsernameTaken is returned when another user already owns the username.
var ErrUsernameTaken = errors.New("username is already taken")

const (
	insertUserSQL          = `INSERT INTO users (username, password_hash, is_anonymous) VALUES (?, ?, 0)`
	insertAnonymousUserSQL = `INSERT INTO users (username, password_hash, is_anonymous) VALUES (?, '', 1)`
	selectUserColumns      = `SELECT id, username, password_hash, is_anonymous, created_at FROM users`

	selectUserByUsernameSQL = selectUserColumns + ` WHERE username = ?`
	selectUserByIDSQL       = selectUserColumns + ` WHERE id = ?`

	linkCredentialsSQL = `UPDATE users SET username = ?, password_hash = ?, is_anonymous = 0 WHERE id = ? AND is_anonymous = 1`
)

// Create inserts a new registered user and returns its ID.
func (r *UserRepository) Create(username, passwordHash string) (int, error) {
	return r.insert(insertUserSQL, username, passwordHash)
}

// CreateAnonymous inserts a guest user without a password and returns its ID.
func (r *UserRepository) CreateAnonymous(username string) (int, error) {
	return r.insert(insertAnonymousUserSQL, username)
}

func (r *UserRepository) insert(query, username string, args ...any) (int, error) {
	res, err := r.db.Exec(query, append([]any{username}, args...)...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", username, err)
	}

	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// LinkCredentials turns an anonymous user into a registered one, keeping its ID.
func (r *UserRepository) LinkCredentials(id int, username, passwordHash string) error {
	res, err := r.db.Exec(linkCredentialsSQL, username, passwordHash, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("link credentials for user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotAnonymous
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAnonymous, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// isUniqueViolation reports whether err comes from a UNIQUE constraint.
// The message check covers drivers that do not expose *sqlite.Error.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
