package models

import "time"

// Profile combines the login identity with the user's chosen display name.
type Profile struct {
	UserID      int       `json:"user_id"`
	Login       string    `json:"login"`
	IsAnonymous bool      `json:"is_anonymous"`
	DisplayName string    `json:"display_name"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
