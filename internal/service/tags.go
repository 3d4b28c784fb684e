package service

import (
	"context"
	"strings"

	"artist-site/internal/apperr"
	"artist-site/internal/domain/works"
	"artist-site/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Color       string  `json:"color" validate:"required,max=7,hexcolor"`
	Description *string `json:"description"`
}

type TagService struct {
	db       *gorm.DB
	validate *validation.Validator
	log      *zap.Logger
}

func NewTagService(db *gorm.DB, v *validation.Validator, log *zap.Logger) *TagService {
	return &TagService{db: db, validate: v, log: log}
}

const tagCountSelect = "tags.*, (SELECT COUNT(*) FROM artwork_tag WHERE artwork_tag.tag_id = tags.id) AS artworks_count"

// List returns all tags in store order with their artwork counts.
func (s *TagService) List(ctx context.Context) ([]works.Tag, error) {
	var tags []works.Tag
	err := s.db.WithContext(ctx).
		Model(&works.Tag{}).
		Select(tagCountSelect).
		Order("tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, dbError(err, "tags")
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uint) (*works.Tag, error) {
	var t works.Tag
	err := s.db.WithContext(ctx).
		Model(&works.Tag{}).
		Select(tagCountSelect).
		Where("tags.id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, dbError(err, "tag")
	}
	return &t, nil
}

func (s *TagService) Create(ctx context.Context, in TagInput) (*works.Tag, error) {
	in = normalizeTag(in)
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	t := works.Tag{Name: in.Name, Color: in.Color, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, tagWriteError(err)
	}
	return s.Get(ctx, t.ID)
}

func (s *TagService) Update(ctx context.Context, id uint, in TagInput) (*works.Tag, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	in = normalizeTag(in)
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, in.Name, id); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Model(&works.Tag{ID: id}).
		Updates(map[string]any{"name": in.Name, "color": in.Color, "description": in.Description}).Error
	if err != nil {
		return nil, tagWriteError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the tag and its artwork links; the artworks stay.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t := works.Tag{ID: id}
		if err := tx.Model(&t).Association("Artworks").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&works.Tag{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return dbError(err, "tag")
	}
	s.log.Info("tag deleted", zap.Uint("tag_id", id))
	return nil
}

// ensureUniqueName compares names case-insensitively, ignoring the tag
// being edited.
func (s *TagService) ensureUniqueName(ctx context.Context, name string, exceptID uint) error {
	q := s.db.WithContext(ctx).Model(&works.Tag{}).Where("LOWER(name) = LOWER(?)", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return dbError(err, "tag")
	}
	if n > 0 {
		return apperr.Conflict("name", "the name has already been taken")
	}
	return nil
}

func normalizeTag(in TagInput) TagInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
	return in
}

func tagWriteError(err error) error {
	if apperr.CodeOf(dbError(err, "tag")) == apperr.CodeConflict {
		return apperr.Conflict("name", "the name has already been taken")
	}
	return dbError(err, "tag")
}
