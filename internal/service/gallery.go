package service

import (
	"context"

	"artist-site/internal/domain/gallery"
	"artist-site/internal/domain/works"

	"golang.org/x/text/language"
)

type GalleryView struct {
	Tags     []works.Tag     `json:"filter_tags"`
	Selected *uint           `json:"selected_tag"`
	Groups   []gallery.Group `json:"groups"`
}

// GalleryRequest carries the visitor's current selection. Selected nil means
// the initial page load; Toggle, when set, is the tag button just clicked.
type GalleryRequest struct {
	Selected *uint
	ShowAll  bool
	Toggle   *uint
}

type GalleryService struct {
	artworks *ArtworkService
	tags     *TagService
	lang     language.Tag
}

// NewGalleryService collates group names by locale, Dutch when the locale
// does not parse.
func NewGalleryService(a *ArtworkService, t *TagService, locale string) *GalleryService {
	lang, err := language.Parse(locale)
	if err != nil {
		lang = language.Dutch
	}
	return &GalleryService{artworks: a, tags: t, lang: lang}
}

func (s *GalleryService) Build(ctx context.Context, req GalleryRequest) (*GalleryView, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	artworks, err := s.artworks.All(ctx)
	if err != nil {
		return nil, err
	}

	selected := req.Selected
	if selected == nil && !req.ShowAll {
		selected = gallery.InitialSelection(tags)
	}
	if req.Toggle != nil {
		selected = gallery.Toggle(selected, *req.Toggle)
	}

	groups := gallery.GroupByTag(tags, artworks, s.lang)
	return &GalleryView{
		Tags:     gallery.FilterTags(tags),
		Selected: selected,
		Groups:   gallery.Filter(groups, selected),
	}, nil
}
