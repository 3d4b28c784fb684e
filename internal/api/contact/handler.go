package contact

import (
	"net/http"

	"artist-site/internal/api/respond"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

type Handler struct {
	contact *service.ContactService
}

func NewHandler(svc *service.ContactService) *Handler {
	return &Handler{contact: svc}
}

// POST /api/contact
func (h *Handler) Send(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if err := h.contact.Send(c.Request.Context(), service.ContactInput(req)); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bedankt voor je bericht! Ik neem zo snel mogelijk contact met je op.",
	})
}
