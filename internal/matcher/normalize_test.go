package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"lowercase and punctuation", "Neem-Oil, SPRAY!", []string{"neem", "oil", "spray"}},
		{"collapse whitespace", "  neem   oil \t spray ", []string{"neem", "oil", "spray"}},
		{"digits kept", "Imida Gold 17.8 SL", []string{"imida", "gold", "17", "8", "sl"}},
		{"isolated letter merges forward", "n eem oil", []string{"neem", "oil"}},
		{"trailing letter merges backward", "neem oi l", []string{"neem", "oil"}},
		{"duplicates removed in order", "oil neem oil spray neem", []string{"oil", "neem", "spray"}},
		{"accents folded", "Régime Café", []string{"regime", "cafe"}},
		{"empty input", "", nil},
		{"punctuation only", "-- !! ..", nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Normalize(tc.raw))
		})
	}
}

func TestNormalizeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "neem oil spray", NormalizeString("NEEM: Oil/Spray"))
	assert.Equal(t, "", NormalizeString("   "))
}
