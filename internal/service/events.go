package service

import (
	"context"
	"time"

	"artist-site/internal/apperr"
	"artist-site/internal/domain/events"
	"artist-site/internal/storage"
	"artist-site/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventInput struct {
	Title        string     `json:"title" validate:"required,max=255"`
	Description  string     `json:"description" validate:"required"`
	Location     string     `json:"location" validate:"required,max=255"`
	DateRange    string     `json:"date_range" validate:"required,max=255"`
	OpeningHours *string    `json:"opening_hours" validate:"omitempty,max=255"`
	TicketInfo   *string    `json:"ticket_info" validate:"omitempty,max=255"`
	Status       string     `json:"status" validate:"required,oneof=current upcoming past"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type EventService struct {
	db       *gorm.DB
	images   images
	validate *validation.Validator
	log      *zap.Logger
}

func NewEventService(db *gorm.DB, store storage.Storage, v *validation.Validator, log *zap.Logger) *EventService {
	return &EventService{
		db:       db,
		images:   images{store: store, rule: EventImages, log: log},
		validate: v,
		log:      log,
	}
}

// List returns events in store order. status and limit are optional
// (nil, 0 for none).
func (s *EventService) List(ctx context.Context, status *events.Status, limit int) ([]events.Event, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []events.Event
	if err := q.Find(&out).Error; err != nil {
		return nil, dbError(err, "events")
	}
	return out, nil
}

type Highlights struct {
	Current  []events.Event `json:"current_events"`
	Upcoming []events.Event `json:"upcoming_events"`
}

// Highlights returns up to n current and n upcoming events for the home page.
func (s *EventService) Highlights(ctx context.Context, n int) (*Highlights, error) {
	cur, up := events.StatusCurrent, events.StatusUpcoming
	current, err := s.List(ctx, &cur, n)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.List(ctx, &up, n)
	if err != nil {
		return nil, err
	}
	return &Highlights{Current: current, Upcoming: upcoming}, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*events.Event, error) {
	var e events.Event
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, dbError(err, "event")
	}
	return &e, nil
}

func (s *EventService) Create(ctx context.Context, in EventInput, image *Upload) (*events.Event, error) {
	status, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.images.check(image); err != nil {
		return nil, err
	}

	path, err := s.images.save(ctx, image)
	if err != nil {
		return nil, err
	}

	e := events.Event{
		Title:        in.Title,
		Description:  in.Description,
		Image:        path,
		Location:     in.Location,
		DateRange:    in.DateRange,
		OpeningHours: in.OpeningHours,
		TicketInfo:   in.TicketInfo,
		Status:       status,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		s.images.discard(ctx, path)
		return nil, dbError(err, "event")
	}

	s.log.Info("event created", zap.Uint("event_id", e.ID))
	return &e, nil
}

func (s *EventService) Update(ctx context.Context, id uint, in EventInput, image *Upload) (*events.Event, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}
	if image != nil {
		if err := s.images.check(image); err != nil {
			return nil, err
		}
	}

	oldPath, newPath := existing.Image, ""
	if image != nil {
		if newPath, err = s.images.save(ctx, image); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{
		"title":         in.Title,
		"description":   in.Description,
		"location":      in.Location,
		"date_range":    in.DateRange,
		"opening_hours": in.OpeningHours,
		"ticket_info":   in.TicketInfo,
		"status":        status,
		"start_date":    in.StartDate,
		"end_date":      in.EndDate,
	}
	if newPath != "" {
		updates["image"] = newPath
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		s.images.discard(ctx, newPath)
		return nil, dbError(err, "event")
	}
	if newPath != "" && oldPath != newPath {
		s.images.discard(ctx, oldPath)
	}
	return s.Get(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&events.Event{}, e.ID)
	if res.Error != nil {
		return dbError(res.Error, "event")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("event not found")
	}

	s.images.discard(ctx, e.Image)
	s.log.Info("event deleted", zap.Uint("event_id", id))
	return nil
}

func (s *EventService) checkInput(in EventInput) (events.Status, error) {
	if err := s.validate.Validate(in); err != nil {
		return "", err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return "", apperr.InvalidField("end_date", "must be on or after start_date")
	}
	status, err := events.ParseStatus(in.Status)
	if err != nil {
		return "", apperr.InvalidField("status", "must be one of: current, upcoming, past")
	}
	return status, nil
}
