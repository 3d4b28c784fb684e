package storage

import (
	"context"
	"io"

	"artist-site/internal/telemetry"
)

type instrumented struct {
	backend string
	next    Storage
}

// WithMetrics counts every call on s in telemetry.StorageOperationsTotal.
func WithMetrics(backend string, s Storage) Storage {
	return &instrumented{backend: backend, next: s}
}

func (i *instrumented) Store(ctx context.Context, namespace, filename string, r io.Reader) (string, error) {
	p, err := i.next.Store(ctx, namespace, filename, r)
	telemetry.StorageOperationsTotal.WithLabelValues(i.backend, "store", telemetry.Result(err)).Inc()
	return p, err
}

func (i *instrumented) Delete(ctx context.Context, path string) error {
	err := i.next.Delete(ctx, path)
	telemetry.StorageOperationsTotal.WithLabelValues(i.backend, "delete", telemetry.Result(err)).Inc()
	return err
}

func (i *instrumented) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := i.next.Exists(ctx, path)
	telemetry.StorageOperationsTotal.WithLabelValues(i.backend, "exists", telemetry.Result(err)).Inc()
	return ok, err
}
