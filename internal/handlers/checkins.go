package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckInRequest is the body of POST /api/v1/checkins.
type CheckInRequest struct {
	// One of happy, neutral, sad, angry, anxious (case-insensitive).
	Mood  string `json:"mood" example:"happy"`
	Notes string `json:"notes,omitempty" example:"Slept well"`
}

// JournalRequest is the body of POST /api/v1/journal.
type JournalRequest struct {
	Title   string `json:"title" example:"Monday"`
	Content string `json:"content" example:"Took a long walk after work."`
}

// @Summary      Record a mood check-in
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Param        body  body      CheckInRequest  true  "Check-in"
// @Success      201   {object}  models.CheckIn
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/checkins [post]
// @Security     BearerAuth
func (h *Handler) createCheckIn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CheckInRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	checkIn, err := h.services.CheckIns.Create(c.Request.Context(), userID, req.Mood, req.Notes)
	if err != nil {
		h.serviceError(c, "failed to save check-in", "checkin_create_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, checkIn)
}

// @Summary      List mood check-ins
// @Description  Newest first.
// @Tags         checkins
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, checkins"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/checkins [get]
// @Security     BearerAuth
func (h *Handler) listCheckIns(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.services.CheckIns.List(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load check-ins", "checkin_list_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "checkins": items})
}

// @Summary      Mood trend
// @Description  Chart points oldest first; mood_value is 5 happy, 3 neutral, 2 sad, 1.5 anxious, 1 angry.
// @Tags         checkins
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, points"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/checkins/trend [get]
// @Security     BearerAuth
func (h *Handler) moodTrend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	points, err := h.services.CheckIns.Trend(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load mood trend", "checkin_trend_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(points), "points": points})
}

// @Summary      Write a journal entry
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        body  body      JournalRequest  true  "Entry"
// @Success      201   {object}  models.JournalEntry
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/journal [post]
// @Security     BearerAuth
func (h *Handler) createJournalEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req JournalRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	entry, err := h.services.Journal.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.serviceError(c, "failed to save journal entry", "journal_create_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary      List journal entries
// @Description  Newest first.
// @Tags         journal
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/journal [get]
// @Security     BearerAuth
func (h *Handler) listJournalEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.services.Journal.List(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load journal", "journal_list_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}
