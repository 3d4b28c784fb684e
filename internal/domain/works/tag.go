package works

import "time"

type Tag struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex:idx_tags_name" json:"name"`
	Color       string  `gorm:"size:7;not null" json:"color"`
	Description *string `gorm:"type:text" json:"description"`

	Artworks []Artwork `gorm:"many2many:artwork_tag;" json:"-"`

	// ArtworksCount is only filled by listing queries that select it.
	ArtworksCount int64 `gorm:"->;-:migration" json:"artworks_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultTags are seeded into an empty tags table.
var DefaultTags = []Tag{
	{Name: "Vogels", Color: "#3B82F6"},
	{Name: "Insecten", Color: "#10B981"},
	{Name: "Hangers", Color: "#F59E0B"},
	{Name: "Bloemen", Color: "#8B5CF6"},
	{Name: "Zoogdieren", Color: "#EF4444"},
}
