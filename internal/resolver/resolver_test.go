package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
)

func newTestResolver() *Resolver {
	cat := catalog.New([]catalog.Entry{
		{
			ID:       "neem",
			Name:     "Neem Oil Spray",
			Company:  "GreenLeaf Organics",
			Crops:    []string{"Tomato", "Chili"},
			Pests:    []string{"Aphids"},
			Usage:    "Dilute and spray.",
			Warnings: "Avoid midday sun.",
		},
		{ID: "copper", Name: "Copper Fungicide", Company: "AgroShield"},
	})
	return New(cat, conf.MatchSettings{
		MinConfidence:      0.60,
		PromotionThreshold: 0.999,
		LowConfidence:      0.75,
	})
}

func TestResolveOne_KnownProductCarriesInfoItems(t *testing.T) {
	t.Parallel()

	res := newTestResolver().ResolveOne("NEEM OIL SPRAY 500ml")
	require.True(t, res.Known)
	assert.Equal(t, "neem", res.ID)
	assert.Equal(t, "Neem Oil Spray", res.DisplayName)
	assert.Equal(t, "GreenLeaf Organics", res.Company)
	assert.Equal(t, 1.0, res.Confidence)
	assert.False(t, res.LowConfidence)

	assert.Equal(t, []InfoItem{
		{Kind: InfoCrop, Text: "Tomato"},
		{Kind: InfoCrop, Text: "Chili"},
		{Kind: InfoPest, Text: "Aphids"},
		{Kind: InfoUsage, Text: "Dilute and spray."},
		{Kind: InfoCaution, Text: "Avoid midday sun."},
	}, res.Items)
}

func TestResolveOne_UnknownKeepsRawText(t *testing.T) {
	t.Parallel()

	res := newTestResolver().ResolveOne("  totally unknown label  ")
	assert.False(t, res.Known)
	assert.Equal(t, "totally unknown label", res.RawText)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Confidence)
}

func TestResolveOne_GarbledTextIsLowConfidence(t *testing.T) {
	t.Parallel()

	res := newTestResolver().ResolveOne("coper fungcide")
	require.True(t, res.Known)
	assert.Equal(t, "copper", res.ID)
	assert.Less(t, res.Confidence, 1.0)
}

func TestResolve_SkipsBlanksAndOrdersKnownFirst(t *testing.T) {
	t.Parallel()

	results := newTestResolver().Resolve([]string{
		"mystery label one",
		"",
		"copper fungicide",
		"   ",
		"mystery label two",
		"neem oil spray",
	})
	require.Len(t, results, 4)

	assert.True(t, results[0].Known)
	assert.Equal(t, "copper", results[0].ID)
	assert.True(t, results[1].Known)
	assert.Equal(t, "neem", results[1].ID)

	assert.False(t, results[2].Known)
	assert.Equal(t, "mystery label one", results[2].RawText)
	assert.False(t, results[3].Known)
	assert.Equal(t, "mystery label two", results[3].RawText)
}

func TestResolve_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, newTestResolver().Resolve(nil))
	assert.Empty(t, newTestResolver().Resolve([]string{"", "  "}))
}
