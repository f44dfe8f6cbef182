package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"
)

const maxDisplayNameLength = 20

var ErrInvalidDisplayName = errors.New("display name must be 1 to 20 characters")

type ProfileService struct {
	repo      repository.ProfileRepo
	eventRepo repository.EventRepo
}

func NewProfileService(repo repository.ProfileRepo, eventRepo repository.EventRepo) *ProfileService {
	return &ProfileService{repo: repo, eventRepo: eventRepo}
}

// Get returns the user's profile or ErrUserNotFound.
func (s *ProfileService) Get(ctx context.Context, userID int) (models.Profile, error) {
	p, err := s.repo.Load(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	if p.UserID == 0 {
		return models.Profile{}, ErrUserNotFound
	}
	return p, nil
}

// SetDisplayName saves a trimmed display name and returns the re-read profile.
func (s *ProfileService) SetDisplayName(ctx context.Context, userID int, name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
		return models.Profile{}, ErrInvalidDisplayName
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return models.Profile{}, err
	}
	if err := s.repo.Save(ctx, userID, name, time.Now().UTC()); err != nil {
		return models.Profile{}, err
	}
	recordEvent(ctx, s.eventRepo, userID, EventProfileUpdate, "Display name updated", map[string]any{"display_name": name})
	return s.Get(ctx, userID)
}
