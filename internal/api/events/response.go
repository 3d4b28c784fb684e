package events

import (
	"time"

	"artist-site/internal/domain/events"
)

type EventDTO struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	Location     string     `json:"location"`
	DateRange    string     `json:"date_range"`
	OpeningHours *string    `json:"opening_hours"`
	TicketInfo   *string    `json:"ticket_info"`
	Status       string     `json:"status"`
	StatusLabel  string     `json:"status_label"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`

	// Derived from the dates at response time; listings still go by Status.
	IsCurrentlyRunning bool `json:"is_currently_running"`
	IsUpcoming         bool `json:"is_upcoming"`
	IsPast             bool `json:"is_past"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToEventDTO(e events.Event, now time.Time) EventDTO {
	return EventDTO{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Image:        e.Image,
		Location:     e.Location,
		DateRange:    e.DateRange,
		OpeningHours: e.OpeningHours,
		TicketInfo:   e.TicketInfo,
		Status:       string(e.Status),
		StatusLabel:  e.Status.Label(),
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,

		IsCurrentlyRunning: e.IsCurrentlyRunning(now),
		IsUpcoming:         e.IsUpcoming(now),
		IsPast:             e.IsPast(now),

		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEventDTOs(list []events.Event, now time.Time) []EventDTO {
	out := make([]EventDTO, 0, len(list))
	for _, e := range list {
		out = append(out, ToEventDTO(e, now))
	}
	return out
}
