package service

import (
	"context"
	"time"

	"artist-site/internal/domain/dashboard"
)

type Overview struct {
	Stats          dashboard.Stats      `json:"stats"`
	RecentActivity []dashboard.Activity `json:"recent_activity"`
}

// DashboardService composes admin statistics from full scans of each store.
type DashboardService struct {
	artworks   *ArtworkService
	events     *EventService
	newsletter *NewsletterService
	now        func() time.Time
}

func NewDashboardService(a *ArtworkService, e *EventService, n *NewsletterService) *DashboardService {
	return &DashboardService{artworks: a, events: e, newsletter: n, now: time.Now}
}

func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	artworks, err := s.artworks.All(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := s.events.List(ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	subs, err := s.newsletter.All(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Stats:          dashboard.Compute(artworks, evs, subs),
		RecentActivity: dashboard.RecentActivity(artworks, evs, s.now()),
	}, nil
}
