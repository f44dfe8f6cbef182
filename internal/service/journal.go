package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"

	"github.com/google/uuid"
)

const maxJournalTitleLength = 200

var (
	ErrEmptyJournalEntry = errors.New("please fill in both title and content")
	ErrTitleTooLong      = errors.New("title is too long")
)

type JournalService struct {
	repo      repository.JournalRepo
	eventRepo repository.EventRepo
}

func NewJournalService(repo repository.JournalRepo, eventRepo repository.EventRepo) *JournalService {
	return &JournalService{repo: repo, eventRepo: eventRepo}
}

// Create stores a journal entry; title and content are both required.
func (s *JournalService) Create(ctx context.Context, userID int, title, content string) (models.JournalEntry, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return models.JournalEntry{}, ErrEmptyJournalEntry
	}
	if utf8.RuneCountInString(title) > maxJournalTitleLength {
		return models.JournalEntry{}, ErrTitleTooLong
	}

	e := models.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return models.JournalEntry{}, err
	}
	recordEvent(ctx, s.eventRepo, userID, EventJournalEntry, "Journal entry saved", map[string]any{"title": title})
	return e, nil
}

// List returns the user's entries, newest first.
func (s *JournalService) List(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}
