package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errLoadProfile = "failed to load profile"

// DisplayNameRequest is the body of PUT /api/v1/profile.
type DisplayNameRequest struct {
	// 1 to 20 characters after trimming.
	DisplayName string `json:"display_name" example:"Sunny"`
}

// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  models.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.services.Profile.Get(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, errLoadProfile, "profile_get_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Set display name
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      DisplayNameRequest  true  "Display name"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/profile [put]
// @Security     BearerAuth
func (h *Handler) setDisplayName(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req DisplayNameRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	p, err := h.services.Profile.SetDisplayName(c.Request.Context(), userID, req.DisplayName)
	if err != nil {
		h.serviceError(c, "failed to update profile", "profile_update_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Helpful resources
// @Tags         resources
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, resources"
// @Router       /resources [get]
func (h *Handler) listResources(c *gin.Context) {
	items := h.services.Resources.List()
	c.JSON(http.StatusOK, gin.H{"count": len(items), "resources": items})
}
