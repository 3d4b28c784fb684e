package events

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusCurrent  Status = "current"
	StatusUpcoming Status = "upcoming"
	StatusPast     Status = "past"
)

var Statuses = []Status{StatusCurrent, StatusUpcoming, StatusPast}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusCurrent, StatusUpcoming, StatusPast:
		return st, nil
	}
	return "", fmt.Errorf("invalid event status %q", s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s Status) Label() string {
	switch s {
	case StatusCurrent:
		return "Huidig"
	case StatusUpcoming:
		return "Aankomend"
	case StatusPast:
		return "Afgelopen"
	default:
		return "Onbekend"
	}
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid event status %q", string(s))
	}
	return string(s), nil
}

func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into events.Status", src)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Event is an exhibition. Status is set by the owner and drives every
// listing; StartDate/EndDate only feed the Is* predicates below.
type Event struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	Image        string  `gorm:"not null" json:"image"`
	Location     string  `gorm:"size:255;not null" json:"location"`
	DateRange    string  `gorm:"size:255;not null" json:"date_range"`
	OpeningHours *string `gorm:"size:255" json:"opening_hours"`
	TicketInfo   *string `gorm:"size:255" json:"ticket_info"`

	Status Status `gorm:"type:varchar(20);not null;index" json:"status"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCurrentlyRunning reports whether now lies within [StartDate, EndDate].
func (e Event) IsCurrentlyRunning(now time.Time) bool {
	if e.StartDate == nil || e.EndDate == nil {
		return false
	}
	return !now.Before(*e.StartDate) && !now.After(*e.EndDate)
}

func (e Event) IsUpcoming(now time.Time) bool {
	return e.StartDate != nil && now.Before(*e.StartDate)
}

func (e Event) IsPast(now time.Time) bool {
	return e.EndDate != nil && now.After(*e.EndDate)
}
