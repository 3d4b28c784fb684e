package events

import (
	"net/http"
	"strings"
	"time"

	"artist-site/internal/api/request"
	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/domain/events"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	homepageCurrent = 2
	homeEachKind    = 2
)

type Handler struct {
	events *service.EventService
	now    func() time.Time
}

func NewHandler(svc *service.EventService) *Handler {
	return &Handler{events: svc, now: time.Now}
}

// ------------------------------
// GET /api/events (?status=), /api/events/{current,upcoming,past}
// ------------------------------
func (h *Handler) List(c *gin.Context) {
	var status *events.Status
	if q := c.Query("status"); q != "" {
		st, err := events.ParseStatus(q)
		if err != nil {
			respond.Error(c, apperr.InvalidField("status", "must be one of: "+statusList()))
			return
		}
		status = &st
	}
	h.list(c, status, 0)
}

// ByStatus serves the fixed per-status routes.
func (h *Handler) ByStatus(status events.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.list(c, &status, 0)
	}
}

// GET /api/events/homepage
func (h *Handler) Homepage(c *gin.Context) {
	st := events.StatusCurrent
	h.list(c, &st, homepageCurrent)
}

func (h *Handler) list(c *gin.Context, status *events.Status, limit int) {
	list, err := h.events.List(c.Request.Context(), status, limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": ToEventDTOs(list, h.now())})
}

// ------------------------------
// GET /api/home
// ------------------------------
func (h *Handler) Home(c *gin.Context) {
	hl, err := h.events.Highlights(c.Request.Context(), homeEachKind)
	if err != nil {
		respond.Error(c, err)
		return
	}
	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"current_events":  ToEventDTOs(hl.Current, now),
		"upcoming_events": ToEventDTOs(hl.Upcoming, now),
	})
}

// ------------------------------
// GET /api/events/:id, /admin/events/:id
// ------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	e, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToEventDTO(*e, h.now()))
}

// ------------------------------
// POST /admin/events (multipart)
// ------------------------------
func (h *Handler) Create(c *gin.Context) {
	in, image, ok := bindEvent(c)
	if !ok {
		return
	}
	e, err := h.events.Create(c.Request.Context(), in, image)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": ToEventDTO(*e, h.now())})
}

// ------------------------------
// PUT /admin/events/:id (multipart, image optional)
// ------------------------------
func (h *Handler) Update(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	in, image, ok := bindEvent(c)
	if !ok {
		return
	}
	e, err := h.events.Update(c.Request.Context(), id, in, image)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": ToEventDTO(*e, h.now())})
}

// ------------------------------
// DELETE /admin/events/:id
// ------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Event deleted successfully")
}

func bindEvent(c *gin.Context) (service.EventInput, *service.Upload, bool) {
	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		respond.BadRequest(c, err)
		return service.EventInput{}, nil, false
	}

	start, err := parseDate("start_date", form.StartDate)
	if err != nil {
		respond.Error(c, err)
		return service.EventInput{}, nil, false
	}
	end, err := parseDate("end_date", form.EndDate)
	if err != nil {
		respond.Error(c, err)
		return service.EventInput{}, nil, false
	}
	image, err := request.Image(c, "image")
	if err != nil {
		respond.Error(c, err)
		return service.EventInput{}, nil, false
	}

	return service.EventInput{
		Title:        form.Title,
		Description:  form.Description,
		Location:     form.Location,
		DateRange:    form.DateRange,
		OpeningHours: emptyToNil(form.OpeningHours),
		TicketInfo:   emptyToNil(form.TicketInfo),
		Status:       form.Status,
		StartDate:    start,
		EndDate:      end,
	}, image, true
}

func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.InvalidField(field, "must be a date like 2025-06-01")
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func statusList() string {
	names := make([]string, len(events.Statuses))
	for i, st := range events.Statuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}
