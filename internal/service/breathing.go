package service

import (
	"context"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/repository"
)

// BreathingService routes commands to the caller's own controller and
// records session starts and stops in the activity log.
type BreathingService struct {
	sessions  *breathing.Manager
	eventRepo repository.EventRepo
}

func NewBreathingService(sessions *breathing.Manager, eventRepo repository.EventRepo) *BreathingService {
	return &BreathingService{sessions: sessions, eventRepo: eventRepo}
}

// Start begins or re-arms the user's session and logs BREATHING_START.
func (s *BreathingService) Start(ctx context.Context, userID int) (breathing.Snapshot, error) {
	snap := s.sessions.Get(userID).Start()
	recordEvent(ctx, s.eventRepo, userID, EventBreathingStart, "Breathing exercise started", map[string]any{
		"total_duration_seconds": snap.TotalDurationSeconds,
	})
	return snap, nil
}

// Stop halts the user's session and logs BREATHING_STOP if one was running.
func (s *BreathingService) Stop(ctx context.Context, userID int) (breathing.Snapshot, error) {
	c := s.sessions.Get(userID)
	wasRunning := c.Snapshot().Running
	snap := c.Stop()
	if !wasRunning {
		return snap, nil
	}
	recordEvent(ctx, s.eventRepo, userID, EventBreathingStop, "Breathing exercise stopped", nil)
	return snap, nil
}

// Reset stops the session and restores the default target duration.
func (s *BreathingService) Reset(ctx context.Context, userID int) (breathing.Snapshot, error) {
	snap := s.sessions.Get(userID).Reset()
	recordEvent(ctx, s.eventRepo, userID, EventBreathingReset, "Breathing exercise reset", nil)
	return snap, nil
}

// SetDuration changes the display-only session target.
func (s *BreathingService) SetDuration(ctx context.Context, userID, seconds int) (breathing.Snapshot, error) {
	return s.sessions.Get(userID).SetTotalDuration(seconds)
}

func (s *BreathingService) State(ctx context.Context, userID int) (breathing.Snapshot, error) {
	return s.sessions.Get(userID).Snapshot(), nil
}

// Pattern returns the phase table every session uses.
func (s *BreathingService) Pattern() breathing.Config {
	return breathing.DefaultConfig()
}

func (s *BreathingService) Subscribe(userID int) (<-chan breathing.Snapshot, func()) {
	return s.sessions.Get(userID).Subscribe()
}
