package auth

import (
	"net/http"

	"artist-site/config"
	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth   *service.AuthService
	google config.GoogleConfig
	// verifier is built lazily on the first Google callback.
	verifier idTokenVerifier
}

func NewHandler(auth *service.AuthService, google config.GoogleConfig) *Handler {
	return &Handler{auth: auth, google: google}
}

// POST /login
func (h *Handler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /admin/change-password
func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		respond.Error(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var body service.ChangePasswordInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err)
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, body); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Password changed successfully")
}
