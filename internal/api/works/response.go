package works

import (
	"time"

	"artist-site/internal/domain/works"
)

// ---------- responses

type TagDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	Description   *string   `json:"description"`
	ArtworksCount *int64    `json:"artworks_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ArtworkDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Tags        []TagDTO  `json:"tags"`
	TagIDs      []uint    `json:"tag_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToTagDTO(t works.Tag, withCount bool) TagDTO {
	out := TagDTO{
		ID:          t.ID,
		Name:        t.Name,
		Color:       t.Color,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if withCount {
		n := t.ArtworksCount
		out.ArtworksCount = &n
	}
	return out
}

func ToArtworkDTO(a works.Artwork) ArtworkDTO {
	tags := make([]TagDTO, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, ToTagDTO(t, false))
	}
	return ArtworkDTO{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Status:      string(a.Status),
		StatusLabel: a.Status.Label(),
		Tags:        tags,
		TagIDs:      a.TagIDs(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToArtworkDTOs(list []works.Artwork) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToArtworkDTO(a))
	}
	return out
}

func ToTagDTOs(list []works.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(list))
	for _, t := range list {
		out = append(out, ToTagDTO(t, true))
	}
	return out
}
