package works

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtworkStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    ArtworkStatus
		wantErr bool
	}{
		{"for_sale", ArtworkForSale, false},
		{"for sale", ArtworkForSale, false},
		{" SOLD ", ArtworkSold, false},
		{"reserved", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseArtworkStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestArtworkStatus_ValueRejectsUnknown(t *testing.T) {
	_, err := ArtworkStatus("reserved").Value()
	assert.Error(t, err)

	v, err := ArtworkSold.Value()
	require.NoError(t, err)
	assert.Equal(t, "sold", v)
}

func TestArtworkStatus_Scan(t *testing.T) {
	var s ArtworkStatus
	require.NoError(t, s.Scan([]byte("for sale")))
	assert.Equal(t, ArtworkForSale, s)

	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan("lost"))
}

func TestArtworkStatus_Label(t *testing.T) {
	assert.Equal(t, "Verkocht", ArtworkSold.Label())
	assert.Equal(t, "Te Koop", ArtworkForSale.Label())
}
