package models

import "time"

type CheckIn struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MoodPoint is one point of the mood trend chart.
type MoodPoint struct {
	Date      string    `json:"date"` // e.g. "Jan 2"
	Mood      string    `json:"mood"`
	MoodValue float64   `json:"mood_value"`
	At        time.Time `json:"at"`
}
