package repository

import (
	"context"
	"database/sql"
	"time"

	"mindful_companion/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	CreateAnonymous(username string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	LinkCredentials(id int, username, hash string) error
}

type ProfileRepo interface {
	Save(ctx context.Context, userID int, displayName string, updatedAt time.Time) error
	Load(ctx context.Context, userID int) (models.Profile, error)
}

type CheckInRepo interface {
	Create(ctx context.Context, c models.CheckIn) error
	ListByUser(ctx context.Context, userID int) ([]models.CheckIn, error)
}

type JournalRepo interface {
	Create(ctx context.Context, e models.JournalEntry) error
	ListByUser(ctx context.Context, userID int) ([]models.JournalEntry, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

type Repository struct {
	Auth        Authorization
	ProfileRepo ProfileRepo
	CheckInRepo CheckInRepo
	JournalRepo JournalRepo
	EventRepo   EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db),
		ProfileRepo: NewProfileSQLite(db),
		CheckInRepo: NewCheckInSQLite(db),
		JournalRepo: NewJournalSQLite(db),
		EventRepo:   NewEventSQLite(db),
	}
}
