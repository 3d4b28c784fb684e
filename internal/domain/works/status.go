package works

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ArtworkStatus is the sale state of an artwork. Only the two constants
// below are valid; Scan, Value and UnmarshalText reject anything else.
type ArtworkStatus string

const (
	ArtworkForSale ArtworkStatus = "for_sale"
	ArtworkSold    ArtworkStatus = "sold"
)

// ParseArtworkStatus also accepts the legacy spelling "for sale".
func ParseArtworkStatus(s string) (ArtworkStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "for_sale", "for sale":
		return ArtworkForSale, nil
	case "sold":
		return ArtworkSold, nil
	}
	return "", fmt.Errorf("invalid artwork status %q", s)
}

func (s ArtworkStatus) Valid() bool {
	return s == ArtworkForSale || s == ArtworkSold
}

// Label is the Dutch text shown on the public site.
func (s ArtworkStatus) Label() string {
	if s == ArtworkSold {
		return "Verkocht"
	}
	return "Te Koop"
}

func (s ArtworkStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid artwork status %q", string(s))
	}
	return string(s), nil
}

func (s *ArtworkStatus) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ArtworkStatus", src)
	}
	parsed, err := ParseArtworkStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *ArtworkStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseArtworkStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
