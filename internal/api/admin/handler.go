package admin

import (
	"net/http"
	"time"

	"artist-site/internal/api/request"
	"artist-site/internal/api/respond"
	"artist-site/internal/domain/newsletter"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriberDTO struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	StatusLabel  string    `json:"status_label"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func toSubscriberDTO(s newsletter.Subscriber) SubscriberDTO {
	label := "Actief"
	if !s.IsActive {
		label = "Inactief"
	}
	return SubscriberDTO{
		ID:           s.ID,
		Email:        s.Email,
		IsActive:     s.IsActive,
		StatusLabel:  label,
		SubscribedAt: s.SubscribedAt,
	}
}

type Handler struct {
	dashboard  *service.DashboardService
	newsletter *service.NewsletterService
}

func NewHandler(d *service.DashboardService, n *service.NewsletterService) *Handler {
	return &Handler{dashboard: d, newsletter: n}
}

// GET /admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ov, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// GET /admin/newsletter
func (h *Handler) ListSubscribers(c *gin.Context) {
	subs, stats, err := h.newsletter.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	out := make([]SubscriberDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriberDTO(s))
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": out, "stats": stats})
}

// PATCH /admin/newsletter/:id/toggle
func (h *Handler) ToggleSubscriber(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	sub, err := h.newsletter.Toggle(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	msg := "Subscriber deactivated"
	if sub.IsActive {
		msg = "Subscriber activated"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "subscriber": toSubscriberDTO(*sub)})
}

// DELETE /admin/newsletter/:id
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.newsletter.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Subscriber deleted")
}
