package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"

	"github.com/google/uuid"
)

// Moods a check-in can record, with their chart value.
const (
	MoodHappy   = "happy"
	MoodNeutral = "neutral"
	MoodSad     = "sad"
	MoodAngry   = "angry"
	MoodAnxious = "anxious"
)

var moodValues = map[string]float64{
	MoodHappy:   5,
	MoodNeutral: 3,
	MoodSad:     2,
	MoodAngry:   1,
	MoodAnxious: 1.5,
}

const (
	trendDateLayout = "Jan 2"
	maxNotesLength  = 2000
)

var (
	ErrInvalidMood  = errors.New("please select your mood")
	ErrNotesTooLong = errors.New("notes are too long")
)

type CheckInService struct {
	repo      repository.CheckInRepo
	eventRepo repository.EventRepo
}

func NewCheckInService(repo repository.CheckInRepo, eventRepo repository.EventRepo) *CheckInService {
	return &CheckInService{repo: repo, eventRepo: eventRepo}
}

// NormalizeMood maps user input to a known mood key.
func NormalizeMood(mood string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(mood))
	_, ok := moodValues[m]
	return m, ok
}

// MoodValue returns the chart value of a stored mood; unknown moods chart as 0.
func MoodValue(mood string) float64 {
	return moodValues[strings.ToLower(strings.TrimSpace(mood))]
}

// Create validates and stores a check-in stamped with the server time.
func (s *CheckInService) Create(ctx context.Context, userID int, mood, notes string) (models.CheckIn, error) {
	m, ok := NormalizeMood(mood)
	if !ok {
		return models.CheckIn{}, ErrInvalidMood
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return models.CheckIn{}, ErrNotesTooLong
	}

	c := models.CheckIn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      m,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return models.CheckIn{}, err
	}
	recordEvent(ctx, s.eventRepo, userID, EventCheckIn, "Check-in saved", map[string]any{"mood": m})
	return c, nil
}

// List returns the user's check-ins, newest first.
func (s *CheckInService) List(ctx context.Context, userID int) ([]models.CheckIn, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Trend returns the user's mood over time, oldest first.
func (s *CheckInService) Trend(ctx context.Context, userID int) ([]models.MoodPoint, error) {
	checkIns, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := make([]models.MoodPoint, 0, len(checkIns))
	for i := len(checkIns) - 1; i >= 0; i-- {
		c := checkIns[i]
		points = append(points, models.MoodPoint{
			Date:      c.CreatedAt.UTC().Format(trendDateLayout),
			Mood:      c.Mood,
			MoodValue: MoodValue(c.Mood),
			At:        c.CreatedAt.UTC(),
		})
	}
	return points, nil
}
