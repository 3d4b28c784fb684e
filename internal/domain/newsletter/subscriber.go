package newsletter

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const (
	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	TokenLength   = 64
)

type Subscriber struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"size:255;not null;uniqueIndex" json:"email"`

	// UnsubscribeToken is written once, by BeforeCreate, and never updated.
	UnsubscribeToken string `gorm:"<-:create;size:64;not null;uniqueIndex" json:"-"`

	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string { return "newsletter_subscribers" }

// BeforeCreate issues the unsubscribe token for every new row.
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	token, err := NewToken()
	if err != nil {
		return fmt.Errorf("generate unsubscribe token: %w", err)
	}
	s.UnsubscribeToken = token
	if s.SubscribedAt.IsZero() {
		s.SubscribedAt = time.Now()
	}
	return nil
}

// NewToken returns a random 64 character alphanumeric token.
func NewToken() (string, error) {
	return gonanoid.Generate(tokenAlphabet, TokenLength)
}

type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

func CountStats(subs []Subscriber) Stats {
	st := Stats{Total: len(subs)}
	for _, s := range subs {
		if s.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
	}
	return st
}
