package service_test

import (
	"context"
	"testing"

	"artist-site/internal/apperr"
	"artist-site/internal/domain/works"
	"artist-site/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagNames(a *works.Artwork) []string {
	out := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		out = append(out, t.Name)
	}
	return out
}

func TestArtworkService_CreateWithTags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	vogels := mustTag(t, e.tags(), "Vogels")

	a, err := e.artworks().Create(ctx, service.ArtworkInput{
		Title:       "Ijsvogel",
		Description: "Aquarel",
		Status:      "for_sale",
		TagIDs:      []uint{vogels, vogels},
	}, upload("ijsvogel.PNG", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, works.ArtworkForSale, a.Status)
	assert.Equal(t, []string{"Vogels"}, tagNames(a))
	assert.Regexp(t, `^/storage/artworks/[A-Za-z0-9_-]+\.png$`, a.Image)
	assert.True(t, e.exists(t, a.Image))
}

func TestArtworkService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.artworks()

	_, err := svc.Create(ctx, service.ArtworkInput{Description: "x", Status: "for_sale"}, upload("a.png", pngBytes))
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.(*apperr.Error).Details, "title")

	_, err = svc.Create(ctx, service.ArtworkInput{Title: "a", Description: "x", Status: "reserved"}, upload("a.png", pngBytes))
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, service.ArtworkInput{Title: "a", Description: "x", Status: "sold"}, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, service.ArtworkInput{Title: "a", Description: "x", Status: "sold"}, upload("a.pdf", pngBytes))
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, service.ArtworkInput{Title: "a", Description: "x", Status: "sold"}, upload("a.png", []byte("not an image at all")))
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(ctx, service.ArtworkInput{Title: "a", Description: "x", Status: "sold", TagIDs: []uint{42}}, upload("a.png", pngBytes))
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.(*apperr.Error).Details, "tag_ids")

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestArtworkService_ImageSizeLimit(t *testing.T) {
	e := newEnv(t)
	up := upload("big.png", pngBytes)
	up.Size = service.ArtworkImages.MaxBytes + 1

	_, err := e.artworks().Create(context.Background(), service.ArtworkInput{Title: "a", Description: "x", Status: "sold"}, up)
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestArtworkService_UpdateSyncsTags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ts := e.tags()
	a, b, c := mustTag(t, ts, "A"), mustTag(t, ts, "B"), mustTag(t, ts, "C")
	svc := e.artworks()

	art, err := svc.Create(ctx, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale", TagIDs: []uint{a, b}}, upload("x.png", pngBytes))
	require.NoError(t, err)
	originalImage := art.Image

	art, err = svc.Update(ctx, art.ID, service.ArtworkInput{Title: "t2", Description: "d", Status: "sold", TagIDs: []uint{b, c}}, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"B", "C"}, tagNames(art))
	assert.Equal(t, originalImage, art.Image)
	assert.Equal(t, works.ArtworkSold, art.Status)
	assert.Equal(t, "t2", art.Title)

	art, err = svc.Update(ctx, art.ID, service.ArtworkInput{Title: "t2", Description: "d", Status: "sold"}, nil)
	require.NoError(t, err)
	assert.Empty(t, art.Tags)
}

func TestArtworkService_UpdateReplacesImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.artworks()

	art, err := svc.Create(ctx, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale"}, upload("x.png", pngBytes))
	require.NoError(t, err)
	old := art.Image

	art, err = svc.Update(ctx, art.ID, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale"}, upload("y.gif", gifBytes))
	require.NoError(t, err)

	assert.NotEqual(t, old, art.Image)
	assert.True(t, e.exists(t, art.Image))
	assert.False(t, e.exists(t, old))
}

func TestArtworkService_UpdateFailureKeepsOldImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.artworks()

	art, err := svc.Create(ctx, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale"}, upload("x.png", pngBytes))
	require.NoError(t, err)
	require.Equal(t, 1, e.storedFiles(t))

	e.failUpdates(t)
	_, err = svc.Update(ctx, art.ID, service.ArtworkInput{Title: "t2", Description: "d", Status: "sold"}, upload("y.gif", gifBytes))
	require.Error(t, err)

	got, err := svc.Get(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, art.Image, got.Image)
	assert.Equal(t, "t", got.Title)
	assert.True(t, e.exists(t, art.Image))
	assert.Equal(t, 1, e.storedFiles(t))
}

func TestArtworkService_UpdateUnknownIsNotFound(t *testing.T) {
	e := newEnv(t)
	_, err := e.artworks().Update(context.Background(), 99, service.ArtworkInput{Title: "t", Description: "d", Status: "sold"}, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestArtworkService_DeleteRemovesImageAndLinks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tagID := mustTag(t, e.tags(), "Vogels")
	svc := e.artworks()

	art, err := svc.Create(ctx, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale", TagIDs: []uint{tagID}}, upload("x.png", pngBytes))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, art.ID))
	assert.False(t, e.exists(t, art.Image))

	var links int64
	require.NoError(t, e.db.Table("artwork_tag").Count(&links).Error)
	assert.Zero(t, links)

	assert.ErrorIs(t, svc.Delete(ctx, art.ID), apperr.ErrNotFound)
}

func TestArtworkService_DeleteToleratesMissingImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.artworks()

	art, err := svc.Create(ctx, service.ArtworkInput{Title: "t", Description: "d", Status: "for_sale"}, upload("x.png", pngBytes))
	require.NoError(t, err)
	require.NoError(t, e.store.Delete(ctx, art.Image))

	assert.NoError(t, svc.Delete(ctx, art.ID))
}

func TestArtworkService_ListByStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.artworks()

	for _, st := range []string{"for_sale", "sold", "for_sale"} {
		_, err := svc.Create(ctx, service.ArtworkInput{Title: st, Description: "d", Status: st}, upload("x.png", pngBytes))
		require.NoError(t, err)
	}

	forSale := works.ArtworkForSale
	list, err := svc.List(ctx, &forSale)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].ID, all[2].ID)
}
