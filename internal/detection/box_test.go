package detection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIoU(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Box
		want float64
	}{
		{
			name: "identical boxes",
			a:    Box{0, 0, 10, 10},
			b:    Box{0, 0, 10, 10},
			want: 1.0,
		},
		{
			name: "no overlap",
			a:    Box{0, 0, 10, 10},
			b:    Box{20, 20, 30, 30},
			want: 0,
		},
		{
			name: "quarter overlap",
			a:    Box{0, 0, 10, 10},
			b:    Box{5, 5, 15, 15},
			want: 25.0 / 175.0,
		},
		{
			name: "touching edges",
			a:    Box{0, 0, 10, 10},
			b:    Box{10, 0, 20, 10},
			want: 0,
		},
		{
			name: "zero-area box",
			a:    Box{5, 5, 5, 5},
			b:    Box{0, 0, 10, 10},
			want: 0,
		},
		{
			name: "inverted box",
			a:    Box{10, 10, 0, 0},
			b:    Box{0, 0, 10, 10},
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IoU(tt.a, tt.b)
			assert.False(t, math.IsNaN(got), "IoU must never be NaN")
			assert.GreaterOrEqual(t, got, 0.0, "IoU must never be negative")
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBoxHelpers(t *testing.T) {
	t.Parallel()

	b := Box{Left: 2, Top: 3, Right: 8, Bottom: 7}
	assert.InDelta(t, 6.0, b.Width(), 1e-9)
	assert.InDelta(t, 4.0, b.Height(), 1e-9)
	assert.InDelta(t, 24.0, b.Area(), 1e-9)
	assert.True(t, b.IsValid())

	degenerate := Box{Left: 5, Top: 5, Right: 5, Bottom: 9}
	assert.False(t, degenerate.IsValid())
	assert.Zero(t, degenerate.Area())
}
