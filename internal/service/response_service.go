package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CHECK_IN", "JOURNAL_ENTRY", "BREATHING_START", ...
}

// Activity event types.
const (
	EventSignUp         = "SIGN_UP"
	EventAccountLink    = "ACCOUNT_LINK"
	EventCheckIn        = "CHECK_IN"
	EventJournalEntry   = "JOURNAL_ENTRY"
	EventProfileUpdate  = "PROFILE_UPDATE"
	EventBreathingStart = "BREATHING_START"
	EventBreathingStop  = "BREATHING_STOP"
	EventBreathingReset = "BREATHING_RESET"
)
