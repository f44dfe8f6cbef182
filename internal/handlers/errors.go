package handlers

import (
	"errors"
	"net/http"

	"mindful_companion/internal/breathing"
	"mindful_companion/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps service sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidMood),
		errors.Is(err, service.ErrNotesTooLong),
		errors.Is(err, service.ErrEmptyJournalEntry),
		errors.Is(err, service.ErrTitleTooLong),
		errors.Is(err, service.ErrInvalidDisplayName),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrPasswordTooLong),
		errors.Is(err, breathing.ErrInvalidDuration):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError answers with the mapped status. Known errors are shown to the
// client; anything else is logged and hidden behind fallbackMsg.
func (h *Handler) serviceError(c *gin.Context, fallbackMsg, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logAndJSONError(c, code, fallbackMsg, logKey, err, kv...)
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
