package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidMood, http.StatusBadRequest},
		{service.ErrEmptyJournalEntry, http.StatusBadRequest},
		{service.ErrInvalidDisplayName, http.StatusBadRequest},
		{breathing.ErrInvalidDuration, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidUsername), http.StatusBadRequest},
		{service.ErrInvalidPassword, http.StatusUnauthorized},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrAlreadyRegistered, http.StatusConflict},
		{service.ErrUsernameTaken, http.StatusConflict},
		{fmt.Errorf("invalid password: %w", service.ErrEmptyPassword), http.StatusBadRequest},
		{fmt.Errorf("invalid password: %w", service.ErrPasswordTooLong), http.StatusBadRequest},
		{errors.New("sqlite: database is locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
