package gallery

import (
	"math/rand"
	"testing"

	"artist-site/internal/domain/works"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func tag(id uint, name string) works.Tag {
	return works.Tag{ID: id, Name: name, Color: "#000000"}
}

func artwork(id uint, tags ...works.Tag) works.Artwork {
	return works.Artwork{ID: id, Title: "a", Tags: tags}
}

func groupNames(groups []Group) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Tag.Name)
	}
	return names
}

func artworkIDs(g Group) []uint {
	ids := make([]uint, 0, len(g.Artworks))
	for _, a := range g.Artworks {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestGroupByTag_ExampleScenario(t *testing.T) {
	vogels := tag(1, "Vogels")
	zoog := tag(2, "Zoogdieren")

	groups := GroupByTag(
		[]works.Tag{vogels, zoog},
		[]works.Artwork{artwork(1, vogels), artwork(2, zoog, vogels)},
		language.Dutch,
	)

	require.Len(t, groups, 2)
	assert.Equal(t, "Vogels", groups[0].Tag.Name)
	assert.Equal(t, []uint{1, 2}, artworkIDs(groups[0]))
	assert.Equal(t, "Zoogdieren", groups[1].Tag.Name)
	assert.Equal(t, []uint{2}, artworkIDs(groups[1]))
}

func TestGroupByTag_Membership(t *testing.T) {
	a, b, c := tag(1, "Bloemen"), tag(2, "Hangers"), tag(3, "Insecten")

	groups := GroupByTag(
		[]works.Tag{a, b, c},
		[]works.Artwork{artwork(10, a, b, c), artwork(11)},
		language.Dutch,
	)

	count := map[uint]int{}
	for _, g := range groups {
		for _, art := range g.Artworks {
			count[art.ID]++
			if art.ID == 10 {
				assert.NotEqual(t, Untagged.ID, g.Tag.ID, "tagged artwork must not be untagged")
			}
			if art.ID == 11 {
				assert.Equal(t, Untagged.ID, g.Tag.ID)
			}
		}
	}
	assert.Equal(t, 3, count[10])
	assert.Equal(t, 1, count[11])
}

func TestGroupByTag_DropsEmptyGroups(t *testing.T) {
	used := tag(1, "Bloemen")
	groups := GroupByTag(
		[]works.Tag{used, tag(2, "Insecten")},
		[]works.Artwork{artwork(1, used)},
		language.Dutch,
	)
	assert.Equal(t, []string{"Bloemen"}, groupNames(groups))
}

func TestGroupByTag_Order(t *testing.T) {
	tags := []works.Tag{
		tag(1, "insecten"),
		tag(2, "Zoogdieren"),
		tag(3, "Bloemen"),
		tag(4, "Vogels"),
		tag(5, "Éénhoorns"),
		tag(6, "Hangers"),
	}
	var arts []works.Artwork
	for i, tg := range tags {
		arts = append(arts, artwork(uint(i+1), tg))
	}
	arts = append(arts, artwork(99))

	want := []string{"Vogels", "Zoogdieren", "Bloemen", "Éénhoorns", "Hangers", "insecten", "Untagged"}
	assert.Equal(t, want, groupNames(GroupByTag(tags, arts, language.Dutch)))

	// the order does not depend on input order
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(tags), func(i, j int) { tags[i], tags[j] = tags[j], tags[i] })
		assert.Equal(t, want, groupNames(GroupByTag(tags, arts, language.Dutch)))
	}
}

func TestGroupByTag_UntaggedGroup(t *testing.T) {
	groups := GroupByTag(nil, []works.Artwork{artwork(1)}, language.Dutch)

	require.Len(t, groups, 1)
	assert.Equal(t, uint(0), groups[0].Tag.ID)
	assert.Equal(t, "#9CA3AF", groups[0].Tag.Color)
	assert.Equal(t, "Untagged", groups[0].Tag.Name)
}

func TestFilterTags_RecentFirst(t *testing.T) {
	tags := []works.Tag{tag(1, "Vogels"), tag(2, "Bloemen"), tag(3, "RECENT"), tag(4, "Hangers")}

	got := FilterTags(tags)
	assert.Equal(t, []string{"RECENT", "Vogels", "Bloemen", "Hangers"}, tagNames(got))

	without := []works.Tag{tag(1, "Zoogdieren"), tag(2, "Bloemen")}
	assert.Equal(t, []string{"Zoogdieren", "Bloemen"}, tagNames(FilterTags(without)))
}

func tagNames(tags []works.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

func TestInitialSelection(t *testing.T) {
	sel := InitialSelection([]works.Tag{tag(1, "Vogels"), tag(7, "recent")})
	require.NotNil(t, sel)
	assert.Equal(t, uint(7), *sel)

	assert.Nil(t, InitialSelection([]works.Tag{tag(1, "Vogels")}))
}

func TestFilterAndToggle(t *testing.T) {
	vogels, bloemen := tag(1, "Vogels"), tag(2, "Bloemen")
	groups := GroupByTag(
		[]works.Tag{vogels, bloemen},
		[]works.Artwork{artwork(1, vogels), artwork(2, bloemen)},
		language.Dutch,
	)

	assert.Len(t, Filter(groups, nil), 2)

	sel := Toggle(nil, 2)
	require.NotNil(t, sel)
	filtered := Filter(groups, sel)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bloemen", filtered[0].Tag.Name)

	sel = Toggle(sel, 1)
	require.NotNil(t, sel)
	assert.Equal(t, uint(1), *sel)

	assert.Nil(t, Toggle(sel, 1), "clicking the selected tag clears it")

	missing := uint(42)
	assert.Empty(t, Filter(groups, &missing))
}
