package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"artist-site/internal/apperr"
	"artist-site/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Upload is an image received from a form. Open may be called more than once.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type ImageRule struct {
	Namespace string
	MaxBytes  int64
}

var (
	ArtworkImages = ImageRule{Namespace: "artworks", MaxBytes: 20 << 20}
	EventImages   = ImageRule{Namespace: "events", MaxBytes: 2 << 20}

	allowedImageExt  = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}
	allowedImageMIME = []string{"image/jpeg", "image/png", "image/gif"}
)

// images stores and removes uploaded pictures for one namespace.
type images struct {
	store storage.Storage
	rule  ImageRule
	log   *zap.Logger
}

// check validates extension, size and the sniffed content type.
func (i images) check(up *Upload) error {
	if up == nil {
		return apperr.InvalidField("image", "is required")
	}
	if !allowedImageExt[strings.ToLower(filepath.Ext(up.Filename))] {
		return apperr.InvalidField("image", "must be a file of type: jpeg, png, jpg, gif")
	}
	if up.Size > i.rule.MaxBytes {
		return apperr.InvalidField("image", fmt.Sprintf("may not be greater than %d kilobytes", i.rule.MaxBytes>>10))
	}

	f, err := up.Open()
	if err != nil {
		return apperr.InvalidField("image", "could not be read")
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil || !mimetype.EqualsAny(mt.String(), allowedImageMIME...) {
		return apperr.InvalidField("image", "must be an image")
	}
	return nil
}

func (i images) save(ctx context.Context, up *Upload) (string, error) {
	f, err := up.Open()
	if err != nil {
		return "", apperr.Internal("failed to open upload", err)
	}
	defer f.Close()

	p, err := i.store.Store(ctx, i.rule.Namespace, up.Filename, f)
	if err != nil {
		return "", apperr.DependencyFailure("failed to store image", err)
	}
	return p, nil
}

// discard removes path if it exists. Storage errors are logged, not returned.
func (i images) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	ok, err := i.store.Exists(ctx, path)
	if err != nil {
		i.log.Warn("checking stored image failed", zap.String("path", path), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := i.store.Delete(ctx, path); err != nil {
		i.log.Warn("deleting stored image failed", zap.String("path", path), zap.Error(err))
	}
}

// dbError maps gorm errors onto the apperr taxonomy.
func dbError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundf("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict.WithCause(err)
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Internal(fmt.Sprintf("%s query failed", what), err)
}
