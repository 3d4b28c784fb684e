package users

import (
	"net/http"

	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth *service.AuthService
}

func NewHandler(auth *service.AuthService) *Handler {
	return &Handler{auth: auth}
}

// GET /admin/me
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		respond.Error(c, apperr.Unauthorized("unauthorized"))
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         user.Role,
			AuthProvider: user.AuthProvider,
			HasPassword:  user.Password != nil && *user.Password != "",
			GoogleLinked: user.GoogleSub != nil,
			LastLoginAt:  user.LastLoginAt,
		},
	})
}
