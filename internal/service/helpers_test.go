package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"artist-site/database/dbtest"
	"artist-site/internal/service"
	"artist-site/internal/storage/local"
	"artist-site/internal/validation"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	gifBytes = append([]byte("GIF89a"), make([]byte, 64)...)
)

func upload(name string, content []byte) *service.Upload {
	return &service.Upload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	Template  string
	Recipient string
	Data      any
}

func (f *fakeMailer) Send(ctx context.Context, template, recipient string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{Template: template, Recipient: recipient, Data: data})
	return nil
}

type env struct {
	dir   string
	db    *gorm.DB
	store *local.LocalStorage
	v     *validation.Validator
	log   *zap.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	store, err := local.New(dir, "/storage")
	require.NoError(t, err)
	return &env{dir: dir, db: dbtest.New(t), store: store, v: validation.New(), log: zap.NewNop()}
}

func (e *env) artworks() *service.ArtworkService {
	return service.NewArtworkService(e.db, e.store, e.v, e.log)
}

func (e *env) tags() *service.TagService {
	return service.NewTagService(e.db, e.v, e.log)
}

func (e *env) events() *service.EventService {
	return service.NewEventService(e.db, e.store, e.v, e.log)
}

func (e *env) newsletter(m *fakeMailer, mode string) *service.NewsletterService {
	return service.NewNewsletterService(e.db, m, e.v, service.NewsletterOptions{
		SiteName:        "Atelier",
		AppURL:          "https://atelier.example/",
		UnsubscribeMode: mode,
	}, e.log)
}

func (e *env) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := e.store.Exists(context.Background(), path)
	require.NoError(t, err)
	return ok
}

// storedFiles counts the files the local backend holds.
func (e *env) storedFiles(t *testing.T) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(e.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

// failUpdates makes every later UPDATE statement on e.db fail.
func (e *env) failUpdates(t *testing.T) {
	t.Helper()
	err := e.db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("update rejected"))
	})
	require.NoError(t, err)
}

func mustTag(t *testing.T, ts *service.TagService, name string) uint {
	t.Helper()
	tag, err := ts.Create(context.Background(), service.TagInput{Name: name, Color: "#112233"})
	require.NoError(t, err)
	return tag.ID
}
