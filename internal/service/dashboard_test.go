package service_test

import (
	"context"
	"testing"

	"artist-site/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Overview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	as, es := e.artworks(), e.events()
	ns := e.newsletter(&fakeMailer{}, "")
	for _, st := range []string{"for_sale", "sold", "sold"} {
		_, err := as.Create(ctx, service.ArtworkInput{Title: st, Description: "d", Status: st}, upload("x.png", pngBytes))
		require.NoError(t, err)
	}
	for _, st := range []string{"current", "past"} {
		_, err := es.Create(ctx, eventInput(st, st), upload("x.png", pngBytes))
		require.NoError(t, err)
	}
	sub, err := ns.Subscribe(ctx, service.SubscribeInput{Email: "a@b.com"})
	require.NoError(t, err)
	_, err = ns.Subscribe(ctx, service.SubscribeInput{Email: "c@d.com"})
	require.NoError(t, err)
	_, err = ns.Toggle(ctx, sub.ID)
	require.NoError(t, err)

	ov, err := service.NewDashboardService(as, es, ns).Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, ov.Stats.Artworks.Total)
	assert.Equal(t, 1, ov.Stats.Artworks.ForSale)
	assert.Equal(t, 2, ov.Stats.Artworks.Sold)
	assert.Equal(t, 2, ov.Stats.Events.Total)
	assert.Equal(t, 1, ov.Stats.Events.Current)
	assert.Equal(t, 1, ov.Stats.Events.Past)
	assert.Equal(t, 2, ov.Stats.Subscribers.Total)
	assert.Equal(t, 1, ov.Stats.Subscribers.Inactive)
	assert.NotEmpty(t, ov.RecentActivity)
	assert.LessOrEqual(t, len(ov.RecentActivity), 4)
}
