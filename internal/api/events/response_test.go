package events

import (
	"testing"
	"time"

	"artist-site/internal/domain/events"

	"github.com/stretchr/testify/assert"
)

func TestToEventDTO_DateFlags(t *testing.T) {
	day := func(d int) *time.Time {
		v := time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	ev := events.Event{ID: 1, Title: "Zomer", Status: events.StatusUpcoming, StartDate: day(10), EndDate: day(20)}

	tests := []struct {
		name                    string
		now                     time.Time
		running, upcoming, past bool
	}{
		{"before start", *day(1), false, true, false},
		{"on start day", *day(10), true, false, false},
		{"on end day", *day(20), true, false, false},
		{"after end", *day(21), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := ToEventDTO(ev, tt.now)
			assert.Equal(t, tt.running, dto.IsCurrentlyRunning)
			assert.Equal(t, tt.upcoming, dto.IsUpcoming)
			assert.Equal(t, tt.past, dto.IsPast)
			assert.Equal(t, "upcoming", dto.Status)
			assert.Equal(t, "Aankomend", dto.StatusLabel)
		})
	}
}

func TestToEventDTO_NoDates(t *testing.T) {
	dto := ToEventDTO(events.Event{Status: events.StatusCurrent}, time.Now())
	assert.False(t, dto.IsCurrentlyRunning)
	assert.False(t, dto.IsUpcoming)
	assert.False(t, dto.IsPast)
}

func TestStatusList(t *testing.T) {
	assert.Equal(t, "current, upcoming, past", statusList())
}
