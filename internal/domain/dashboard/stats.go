// Package dashboard computes the admin overview from full collections.
// Nothing here is stored; every number is recomputed per request.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"artist-site/internal/domain/events"
	"artist-site/internal/domain/newsletter"
	"artist-site/internal/domain/works"
)

type ArtworkStats struct {
	Total   int `json:"total"`
	ForSale int `json:"for_sale"`
	Sold    int `json:"sold"`
}

type EventStats struct {
	Total    int `json:"total"`
	Current  int `json:"current"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
}

type Stats struct {
	Artworks    ArtworkStats     `json:"artworks"`
	Events      EventStats       `json:"events"`
	Subscribers newsletter.Stats `json:"subscribers"`
}

func CountArtworks(artworks []works.Artwork) ArtworkStats {
	st := ArtworkStats{Total: len(artworks)}
	for _, a := range artworks {
		switch a.Status {
		case works.ArtworkForSale:
			st.ForSale++
		case works.ArtworkSold:
			st.Sold++
		}
	}
	return st
}

// CountEvents buckets by the stored status only.
func CountEvents(evs []events.Event) EventStats {
	st := EventStats{Total: len(evs)}
	for _, e := range evs {
		switch e.Status {
		case events.StatusCurrent:
			st.Current++
		case events.StatusUpcoming:
			st.Upcoming++
		case events.StatusPast:
			st.Past++
		}
	}
	return st
}

func Compute(artworks []works.Artwork, evs []events.Event, subs []newsletter.Subscriber) Stats {
	return Stats{
		Artworks:    CountArtworks(artworks),
		Events:      CountEvents(evs),
		Subscribers: newsletter.CountStats(subs),
	}
}

const (
	ActivityExhibition = "exhibition"
	ActivitySale       = "sale"
	ActivityCreation   = "creation"

	maxActivity  = 4
	perKindLimit = 2
)

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
	TimeAgo     string    `json:"time"`
}

// RecentActivity lists up to four recent happenings, newest first. It draws
// from the first two current events, the first two sold artworks and the
// two most recently created artworks.
func RecentActivity(artworks []works.Artwork, evs []events.Event, now time.Time) []Activity {
	var out []Activity

	n := 0
	for _, e := range evs {
		if e.Status != events.StatusCurrent || n == perKindLimit {
			continue
		}
		n++
		out = append(out, Activity{
			ID:          fmt.Sprintf("event_%d", e.ID),
			Type:        ActivityExhibition,
			Title:       "Exhibition started",
			Description: fmt.Sprintf("%s started at %s", e.Title, e.Location),
			At:          e.CreatedAt,
		})
	}

	n = 0
	for _, a := range artworks {
		if a.Status != works.ArtworkSold || n == perKindLimit {
			continue
		}
		n++
		out = append(out, Activity{
			ID:          fmt.Sprintf("sold_%d", a.ID),
			Type:        ActivitySale,
			Title:       "Artwork sold",
			Description: fmt.Sprintf("%s was sold", a.Title),
			At:          a.UpdatedAt,
		})
	}

	newest := append([]works.Artwork(nil), artworks...)
	sort.SliceStable(newest, func(i, j int) bool { return newest[i].CreatedAt.After(newest[j].CreatedAt) })
	for i := 0; i < len(newest) && i < perKindLimit; i++ {
		a := newest[i]
		out = append(out, Activity{
			ID:          fmt.Sprintf("new_%d", a.ID),
			Type:        ActivityCreation,
			Title:       "New artwork added",
			Description: fmt.Sprintf("%s was added to the collection", a.Title),
			At:          a.CreatedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if len(out) > maxActivity {
		out = out[:maxActivity]
	}
	for i := range out {
		out[i].TimeAgo = TimeAgo(out[i].At, now)
	}
	return out
}

// TimeAgo renders the distance between t and now in minutes, hours, days or weeks.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d/(24*time.Hour)))
	default:
		return fmt.Sprintf("%d weeks ago", int(d/(7*24*time.Hour)))
	}
}
