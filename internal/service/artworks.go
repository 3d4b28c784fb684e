package service

import (
	"context"

	"artist-site/internal/apperr"
	"artist-site/internal/domain/works"
	"artist-site/internal/storage"
	"artist-site/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArtworkInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=for_sale sold"`
	TagIDs      []uint `json:"tag_ids" validate:"dive,gt=0"`
}

type ArtworkService struct {
	db       *gorm.DB
	images   images
	validate *validation.Validator
	log      *zap.Logger
}

func NewArtworkService(db *gorm.DB, store storage.Storage, v *validation.Validator, log *zap.Logger) *ArtworkService {
	return &ArtworkService{
		db:       db,
		images:   images{store: store, rule: ArtworkImages, log: log},
		validate: v,
		log:      log,
	}
}

func (s *ArtworkService) withTags(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("tags.id ASC")
	})
}

// List returns artworks newest first, optionally only those with status.
func (s *ArtworkService) List(ctx context.Context, status *works.ArtworkStatus) ([]works.Artwork, error) {
	q := s.withTags(ctx).Order("created_at DESC").Order("id DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []works.Artwork
	if err := q.Find(&out).Error; err != nil {
		return nil, dbError(err, "artworks")
	}
	return out, nil
}

// All returns every artwork with its tags in insertion order.
func (s *ArtworkService) All(ctx context.Context) ([]works.Artwork, error) {
	var out []works.Artwork
	if err := s.withTags(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, dbError(err, "artworks")
	}
	return out, nil
}

func (s *ArtworkService) Get(ctx context.Context, id uint) (*works.Artwork, error) {
	var a works.Artwork
	if err := s.withTags(ctx).First(&a, id).Error; err != nil {
		return nil, dbError(err, "artwork")
	}
	return &a, nil
}

// Create stores the image first, then inserts the row and attaches the tags.
func (s *ArtworkService) Create(ctx context.Context, in ArtworkInput, image *Upload) (*works.Artwork, error) {
	status, err := s.checkInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.images.check(image); err != nil {
		return nil, err
	}
	tags, err := findTags(ctx, s.db, in.TagIDs)
	if err != nil {
		return nil, err
	}

	path, err := s.images.save(ctx, image)
	if err != nil {
		return nil, err
	}

	a := works.Artwork{
		Title:       in.Title,
		Description: in.Description,
		Image:       path,
		Status:      status,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(&a).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(&a).Association("Tags").Append(tags)
	})
	if err != nil {
		s.images.discard(ctx, path)
		return nil, dbError(err, "artwork")
	}

	s.log.Info("artwork created", zap.Uint("artwork_id", a.ID))
	return s.Get(ctx, a.ID)
}

// Update replaces the fields and the full tag set. A new image is stored
// before the row changes; the previous one is removed after commit.
func (s *ArtworkService) Update(ctx context.Context, id uint, in ArtworkInput, image *Upload) (*works.Artwork, error) {
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
	tags, err := findTags(ctx, s.db, in.TagIDs)
	if err != nil {
		return nil, err
	}

	oldPath, newPath := existing.Image, ""
	if image != nil {
		if newPath, err = s.images.save(ctx, image); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"status":      status,
	}
	if newPath != "" {
		updates["image"] = newPath
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(existing).Omit("Tags").Updates(updates).Error; err != nil {
			return err
		}
		assoc := tx.Model(existing).Association("Tags")
		if len(tags) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(tags)
	})
	if err != nil {
		s.images.discard(ctx, newPath)
		return nil, dbError(err, "artwork")
	}

	if newPath != "" && oldPath != newPath {
		s.images.discard(ctx, oldPath)
	}
	return s.Get(ctx, id)
}

// Delete removes the row and its tag links, then the stored image.
func (s *ArtworkService) Delete(ctx context.Context, id uint) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(a).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&works.Artwork{}, a.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return dbError(err, "artwork")
	}

	s.images.discard(ctx, a.Image)
	s.log.Info("artwork deleted", zap.Uint("artwork_id", id))
	return nil
}

func (s *ArtworkService) checkInput(in ArtworkInput) (works.ArtworkStatus, error) {
	if err := s.validate.Validate(in); err != nil {
		return "", err
	}
	status, err := works.ParseArtworkStatus(in.Status)
	if err != nil {
		return "", apperr.InvalidField("status", "must be one of: for_sale, sold")
	}
	return status, nil
}

// findTags loads the tags with the given ids, failing when any is unknown.
func findTags(ctx context.Context, db *gorm.DB, ids []uint) ([]works.Tag, error) {
	uniq := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	if len(uniq) == 0 {
		return nil, nil
	}

	var tags []works.Tag
	if err := db.WithContext(ctx).Where("id IN ?", uniq).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, dbError(err, "tags")
	}
	if len(tags) != len(uniq) {
		return nil, apperr.InvalidField("tag_ids", "contains an unknown tag")
	}
	return tags, nil
}
