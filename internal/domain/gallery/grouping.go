// Package gallery builds the public gallery layout: artworks grouped per tag,
// the filter button order and the tag selection rules.
//
// Everything here is a pure function over the slices it receives.
package gallery

import (
	"sort"
	"strings"

	"artist-site/internal/domain/works"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Untagged is the synthetic tag collecting artworks without tags.
var Untagged = works.Tag{
	ID:          0,
	Name:        "Untagged",
	Color:       "#9CA3AF",
	Description: ptr("Artworks without tags"),
}

const (
	firstTagName  = "Vogels"
	secondTagName = "Zoogdieren"
	recentTagName = "recent"
)

type Group struct {
	Tag      works.Tag       `json:"tag"`
	Artworks []works.Artwork `json:"artworks"`
}

// GroupByTag places every artwork in the group of each of its tags, or in
// the Untagged group when it has none. Empty groups are dropped. Groups are
// ordered Vogels, Zoogdieren, then by name collated for lang.
func GroupByTag(tags []works.Tag, artworks []works.Artwork, lang language.Tag) []Group {
	index := make(map[uint]int, len(tags)+1)
	groups := make([]Group, 0, len(tags)+1)
	for _, t := range tags {
		if _, dup := index[t.ID]; dup {
			continue
		}
		index[t.ID] = len(groups)
		groups = append(groups, Group{Tag: t})
	}
	untagged := len(groups)
	groups = append(groups, Group{Tag: Untagged})

	for _, a := range artworks {
		if len(a.Tags) == 0 {
			groups[untagged].Artworks = append(groups[untagged].Artworks, a)
			continue
		}
		seen := make(map[uint]bool, len(a.Tags))
		for _, t := range a.Tags {
			i, ok := index[t.ID]
			if !ok || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			groups[i].Artworks = append(groups[i].Artworks, a)
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Artworks) > 0 {
			out = append(out, g)
		}
	}

	col := collate.New(lang)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Tag, out[j].Tag
		if ra, rb := rank(a.Name), rank(b.Name); ra != rb {
			return ra < rb
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return out
}

func rank(name string) int {
	switch name {
	case firstTagName:
		return 0
	case secondTagName:
		return 1
	default:
		return 2
	}
}

// FilterTags returns the tags in button order: any tag named "Recent"
// (case-insensitive) first, the rest in their given order.
func FilterTags(tags []works.Tag) []works.Tag {
	out := make([]works.Tag, 0, len(tags))
	for _, t := range tags {
		if isRecent(t) {
			out = append(out, t)
		}
	}
	for _, t := range tags {
		if !isRecent(t) {
			out = append(out, t)
		}
	}
	return out
}

// InitialSelection picks the Recent tag when one exists.
func InitialSelection(tags []works.Tag) *uint {
	for _, t := range tags {
		if isRecent(t) {
			id := t.ID
			return &id
		}
	}
	return nil
}

// Filter returns all groups when selected is nil, otherwise only the group
// whose tag id matches.
func Filter(groups []Group, selected *uint) []Group {
	if selected == nil {
		return groups
	}
	for _, g := range groups {
		if g.Tag.ID == *selected {
			return []Group{g}
		}
	}
	return []Group{}
}

// Toggle returns the selection after clicking tag id: clicking the selected
// tag clears it, any other tag becomes selected.
func Toggle(selected *uint, id uint) *uint {
	if selected != nil && *selected == id {
		return nil
	}
	return &id
}

func isRecent(t works.Tag) bool {
	return strings.EqualFold(strings.TrimSpace(t.Name), recentTagName)
}

func ptr[T any](v T) *T { return &v }
