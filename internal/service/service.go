package service

import (
	"context"
	"time"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	SignInAnonymous() (int, string, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	LinkCredentials(userID int, username, password string) error
}

// Breathing exposes the per-user guided breathing session.
type Breathing interface {
	Start(ctx context.Context, userID int) (breathing.Snapshot, error)
	Stop(ctx context.Context, userID int) (breathing.Snapshot, error)
	Reset(ctx context.Context, userID int) (breathing.Snapshot, error)
	SetDuration(ctx context.Context, userID, seconds int) (breathing.Snapshot, error)
	State(ctx context.Context, userID int) (breathing.Snapshot, error)
	Pattern() breathing.Config
	Subscribe(userID int) (<-chan breathing.Snapshot, func())
}

// CheckIns records mood check-ins and derives the mood trend.
type CheckIns interface {
	Create(ctx context.Context, userID int, mood, notes string) (models.CheckIn, error)
	List(ctx context.Context, userID int) ([]models.CheckIn, error)
	Trend(ctx context.Context, userID int) ([]models.MoodPoint, error)
}

type Journal interface {
	Create(ctx context.Context, userID int, title, content string) (models.JournalEntry, error)
	List(ctx context.Context, userID int) ([]models.JournalEntry, error)
}

type Profile interface {
	Get(ctx context.Context, userID int) (models.Profile, error)
	SetDisplayName(ctx context.Context, userID int, name string) (models.Profile, error)
}

// Resources lists the static self-help links.
type Resources interface {
	List() []models.Resource
}

// ActivityLog exposes append-only per-user activity with filtering access.
type ActivityLog interface {
	List(ctx context.Context, userID int, f LogFilter) ([]models.ActivityEvent, error)
}

// Deps carries the runtime settings services need beyond the repositories.
type Deps struct {
	SigningKey string
	TokenTTL   time.Duration
	Breathing  *breathing.Manager
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Breathing
	CheckIns
	Journal
	Profile
	Resources
	ActivityLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) (*Service, error) {
	resources, err := NewResourceService()
	if err != nil {
		return nil, err
	}
	if deps.Breathing == nil {
		deps.Breathing = breathing.NewManager(breathing.DefaultIdleTTL)
	}

	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.EventRepo, deps.SigningKey, deps.TokenTTL),
		Breathing:     NewBreathingService(deps.Breathing, repos.EventRepo),
		CheckIns:      NewCheckInService(repos.CheckInRepo, repos.EventRepo),
		Journal:       NewJournalService(repos.JournalRepo, repos.EventRepo),
		Profile:       NewProfileService(repos.ProfileRepo, repos.EventRepo),
		Resources:     resources,
		ActivityLog:   NewActivityLogService(repos.EventRepo),
	}, nil
}
