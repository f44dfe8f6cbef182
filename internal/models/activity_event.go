package models

import "time"

// ActivityEvent is a single entry of a user's activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CHECK_IN | JOURNAL_ENTRY | BREATHING_START | ...
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
