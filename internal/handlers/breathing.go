package handlers

import (
	"context"
	"net/http"

	"mindful_companion/internal/breathing"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"
	statusReset   = "reset"
	statusUpdated = "updated"

	errBreathing = "failed to update breathing session"
)

// SetDurationRequest is the body of PUT /api/v1/breathing/duration.
type SetDurationRequest struct {
	// Session target in seconds. Display-only: it never stops the cycle.
	Seconds int `json:"seconds" binding:"required" example:"300"`
}

// patternStep is one row of the phase table as shown to clients.
type patternStep struct {
	Phase           breathing.Phase `json:"phase"`
	DurationSeconds int             `json:"duration_seconds"`
	Instruction     string          `json:"instruction"`
	Next            breathing.Phase `json:"next"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

type breathingCommand func(ctx context.Context, userID int) (breathing.Snapshot, error)

// runBreathingCommand applies cmd for the current user and answers with the
// resulting snapshot.
func (h *Handler) runBreathingCommand(c *gin.Context, status, logKey string, cmd breathingCommand) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	snap, err := cmd(c.Request.Context(), userID)
	if err != nil {
		// The session changed; only recording it failed.
		if h.log != nil {
			h.log.Errorw(logKey, "err", err, "user_id", userID)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "state": snap})
}

// @Summary      Get breathing state
// @Tags         breathing
// @Produce      json
// @Success      200  {object}  breathing.Snapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/breathing/state [get]
// @Security     BearerAuth
func (h *Handler) breathingState(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	snap, err := h.services.Breathing.State(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load breathing state", "breathing_state_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Get breathing pattern
// @Description  The phase table in cycle order.
// @Tags         breathing
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "start, phases"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/breathing/pattern [get]
// @Security     BearerAuth
func (h *Handler) breathingPattern(c *gin.Context) {
	cfg := h.services.Breathing.Pattern()
	steps := make([]patternStep, 0, len(cfg.Phases))
	for _, p := range cfg.Order() {
		spec := cfg.Phases[p]
		steps = append(steps, patternStep{
			Phase:           p,
			DurationSeconds: spec.DurationSeconds,
			Instruction:     spec.Instruction,
			Next:            spec.Next,
		})
	}
	c.JSON(http.StatusOK, gin.H{"start": cfg.Start, "phases": steps})
}

// @Summary      Start breathing session
// @Description  Starts the cycle at Inhale. Starting a running session restarts it.
// @Tags         breathing
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/breathing/start [post]
// @Security     BearerAuth
func (h *Handler) startBreathing(c *gin.Context) {
	h.runBreathingCommand(c, statusStarted, "breathing_start_failed", h.services.Breathing.Start)
}

// @Summary      Stop breathing session
// @Tags         breathing
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/breathing/stop [post]
// @Security     BearerAuth
func (h *Handler) stopBreathing(c *gin.Context) {
	h.runBreathingCommand(c, statusStopped, "breathing_stop_failed", h.services.Breathing.Stop)
}

// @Summary      Reset breathing session
// @Description  Stops the session and restores the default 60 second target.
// @Tags         breathing
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/breathing/reset [post]
// @Security     BearerAuth
func (h *Handler) resetBreathing(c *gin.Context) {
	h.runBreathingCommand(c, statusReset, "breathing_reset_failed", h.services.Breathing.Reset)
}

// @Summary      Set session duration
// @Tags         breathing
// @Accept       json
// @Produce      json
// @Param        body  body      SetDurationRequest  true  "Duration payload"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/breathing/duration [put]
// @Security     BearerAuth
func (h *Handler) setBreathingDuration(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req SetDurationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	snap, err := h.services.Breathing.SetDuration(c.Request.Context(), userID, req.Seconds)
	if err != nil {
		h.serviceError(c, errBreathing, "breathing_set_duration_failed", err, "user_id", userID, "seconds", req.Seconds)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusUpdated, "state": snap})
}
