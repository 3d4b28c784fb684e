// Package storage defines the file storage used for artwork and event images.
//
// Backends live in sub-packages and register themselves from init(); main
// blank-imports the ones it wants compiled in:
//
//	import _ "artist-site/internal/storage/local"
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"artist-site/config"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Storage stores uploaded files under a namespace ("artworks", "events")
// and hands back the public path that is saved on the row.
type Storage interface {
	Store(ctx context.Context, namespace, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// ErrForeignPath is returned for paths that were not issued by the backend.
var ErrForeignPath = errors.New("path is not managed by this storage backend")

type FactoryFunc func(*config.Config) (Storage, error)

var factories = make(map[string]FactoryFunc)

func Register(name string, factory FactoryFunc) {
	factories[name] = factory
}

// New builds the backend named by cfg.Storage.Backend, wrapped with metrics.
func New(cfg *config.Config) (Storage, error) {
	factory, ok := factories[cfg.Storage.Backend]
	if !ok {
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
	s, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	return WithMetrics(cfg.Storage.Backend, s), nil
}

// ObjectKey returns a fresh key "namespace/<random>.<ext>" for filename.
func ObjectKey(namespace, filename string) (string, error) {
	namespace = strings.Trim(path.Clean("/"+namespace), "/")
	if namespace == "" || namespace == "." {
		return "", fmt.Errorf("empty storage namespace")
	}
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate file name: %w", err)
	}
	return namespace + "/" + id + strings.ToLower(path.Ext(filename)), nil
}

// KeyFromPath strips prefix from a public path and rejects anything that
// would escape the storage root.
func KeyFromPath(prefix, p string) (string, error) {
	prefix = strings.TrimRight(prefix, "/") + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", ErrForeignPath
	}
	key := strings.TrimPrefix(p, prefix)
	clean := path.Clean("/" + key)
	if key == "" || clean != "/"+key {
		return "", ErrForeignPath
	}
	return key, nil
}
