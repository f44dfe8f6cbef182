package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for sign-up, sign-in and account linking.
type authCredentials struct {
	Username string `json:"username" binding:"required" example:"calm_river"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.Authorization.SignUp(input.Username, input.Password)
	if err != nil {
		h.serviceError(c, "failed to create account", "auth_sign_up_failed", err, "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Authorization.GenerateToken(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Continue as guest
// @Description  Creates an anonymous account that can later be linked to credentials.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "id, token"
// @Failure      500  {object}  map[string]string
// @Router       /auth/anonymous [post]
func (h *Handler) signInAnonymous(c *gin.Context) {
	id, token, err := h.services.Authorization.SignInAnonymous()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to create guest session", "auth_anonymous_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "token": token})
}

// @Summary      Link guest account
// @Description  Attaches a username and password to the current guest account. The user id does not change.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  models.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/profile/link [post]
// @Security     BearerAuth
func (h *Handler) linkCredentials(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.Authorization.LinkCredentials(userID, input.Username, input.Password); err != nil {
		h.serviceError(c, "failed to link account", "auth_link_failed", err, "user_id", userID, "username", input.Username)
		return
	}

	p, err := h.services.Profile.Get(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, errLoadProfile, "profile_get_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, p)
}
