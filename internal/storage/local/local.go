// Package local stores files on the local filesystem. The files are served
// by the HTTP server itself under the configured public prefix.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"artist-site/config"
	"artist-site/internal/storage"
)

func init() {
	storage.Register("local", func(cfg *config.Config) (storage.Storage, error) {
		return New(cfg.Storage.Local.BasePath, cfg.Storage.Local.PublicPrefix)
	})
}

type LocalStorage struct {
	basePath     string
	publicPrefix string
}

func New(basePath, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if publicPrefix == "" {
		publicPrefix = "/storage"
	}
	return &LocalStorage{
		basePath:     basePath,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}, nil
}

func (s *LocalStorage) BasePath() string     { return s.basePath }
func (s *LocalStorage) PublicPrefix() string { return s.publicPrefix }

func (s *LocalStorage) Store(ctx context.Context, namespace, filename string, r io.Reader) (string, error) {
	key, err := storage.ObjectKey(namespace, filename)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.publicPrefix + "/" + key, nil
}

// Delete removes the file behind path. A file that is already gone is not an error.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := s.resolve(path)
	if errors.Is(err, storage.ErrForeignPath) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (s *LocalStorage) resolve(path string) (string, error) {
	key, err := storage.KeyFromPath(s.publicPrefix, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, filepath.FromSlash(key)), nil
}
