package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mindful_companion/internal/logger"
	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"

	"github.com/google/uuid"
)

type ActivityLogService struct {
	eventRepo repository.EventRepo
}

func NewActivityLogService(eventRepo repository.EventRepo) *ActivityLogService {
	return &ActivityLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// List returns the user's activity matching f, oldest first.
func (s *ActivityLogService) List(ctx context.Context, userID int, f LogFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, userID, from, to, typ)
}

// appendEvent builds and stores an activity event for userID.
func appendEvent(ctx context.Context, repo repository.EventRepo, userID int, typ, description string, meta any) error {
	if repo == nil {
		return nil
	}
	return repo.Append(ctx, models.ActivityEvent{
		EventID:     uuid.NewString(),
		UserID:      userID,
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
}

// recordEvent appends an activity event. A failed append is logged and never
// undoes the write it describes.
func recordEvent(ctx context.Context, repo repository.EventRepo, userID int, typ, description string, meta any) {
	if err := appendEvent(ctx, repo, userID, typ, description, meta); err != nil {
		logger.Get(logger.InfoLevel).Warnw("activity_append_failed", "user_id", userID, "type", typ, "err", err)
	}
}
