package newsletter

import (
	"net/http"

	"artist-site/internal/api/respond"
	"artist-site/internal/mail"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type subscribeRequest struct {
	Email string `json:"email" form:"email"`
}

// PageInfo is the site identity shown on the unsubscribe page.
type PageInfo struct {
	SiteName string
	SiteURL  string
}

type Handler struct {
	newsletter *service.NewsletterService
	pages      *mail.Renderer
	info       PageInfo
}

func NewHandler(svc *service.NewsletterService, pages *mail.Renderer, info PageInfo) *Handler {
	return &Handler{newsletter: svc, pages: pages, info: info}
}

// ------------------------------
// POST /api/newsletter/subscribe
// ------------------------------
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if _, err := h.newsletter.Subscribe(c.Request.Context(), service.SubscribeInput(req)); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Bedankt voor je aanmelding! Je ontvangt binnenkort een bevestigingsmail.",
	})
}

// ------------------------------
// POST /api/newsletter/unsubscribe
// ------------------------------
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if err := h.newsletter.UnsubscribeByEmail(c.Request.Context(), service.SubscribeInput(req)); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Je bent succesvol uitgeschreven van de nieuwsbrief.",
	})
}

// ------------------------------
// GET /api/newsletter/check?email=
// ------------------------------
func (h *Handler) Check(c *gin.Context) {
	st, err := h.newsletter.Check(c.Request.Context(), c.Query("email"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ------------------------------
// GET /newsletter/unsubscribe/:token (HTML)
// ------------------------------

// UnsubscribePage always renders a page; an unknown token shows the
// invalid link message with status 200.
func (h *Handler) UnsubscribePage(c *gin.Context) {
	email, ok, err := h.newsletter.UnsubscribeByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respond.Logger(c).Error("unsubscribe by link failed", zap.Error(err))
		ok = false
	}

	_, body, rerr := h.pages.Render(mail.TemplateUnsubscribePage, mail.UnsubscribePageData{
		SiteName: h.info.SiteName,
		SiteURL:  h.info.SiteURL,
		Email:    email,
		OK:       ok,
	})
	if rerr != nil {
		respond.Error(c, rerr)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
