package works

import "time"

type Artwork struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Image is the path handed out by the storage backend.
	Image string `gorm:"not null" json:"image"`

	Status ArtworkStatus `gorm:"type:varchar(20);not null;default:'for_sale';index" json:"status"`

	Tags []Tag `gorm:"many2many:artwork_tag;" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagIDs returns the ids of the loaded tags in order.
func (a Artwork) TagIDs() []uint {
	ids := make([]uint, 0, len(a.Tags))
	for _, t := range a.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
