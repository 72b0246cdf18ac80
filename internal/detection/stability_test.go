package detection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDetection(t *testing.T, box Box, confidence float64, ts time.Time) *Detection {
	t.Helper()
	det, err := NewDetection(box, confidence, 0, ts)
	require.NoError(t, err)
	return &det
}

func TestStabilityGate_EdgeTriggered(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()
	box := Box{0, 0, 100, 100}

	// First detection only anchors.
	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base)))
	assert.False(t, gate.IsStable())

	// Still inside the stability window.
	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base.Add(300*time.Millisecond))))

	// Crossing the threshold fires exactly once.
	assert.True(t, gate.Update(mustDetection(t, box, 0.9, base.Add(600*time.Millisecond))))

	// Subsequent stable updates do not fire again.
	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base.Add(900*time.Millisecond))))
	assert.True(t, gate.IsStable())
}

func TestStabilityGate_LowConfidenceResets(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()
	box := Box{0, 0, 100, 100}

	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base)))
	assert.False(t, gate.Update(mustDetection(t, box, 0.3, base.Add(200*time.Millisecond))))

	// Gate restarted: the old anchor is gone, so stabilization needs the
	// full window again.
	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base.Add(400*time.Millisecond))))
	assert.False(t, gate.Update(mustDetection(t, box, 0.9, base.Add(700*time.Millisecond))))
	assert.True(t, gate.Update(mustDetection(t, box, 0.9, base.Add(1000*time.Millisecond))))
}

func TestStabilityGate_NilDetectionResets(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()
	box := Box{0, 0, 100, 100}

	assert.True(t, gate.Update(mustDetection(t, box, 0.9, base)) == false)
	assert.False(t, gate.Update(nil))
	_, ok := gate.StableBox()
	assert.False(t, ok)
}

func TestStabilityGate_MovementReanchors(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()

	assert.False(t, gate.Update(mustDetection(t, Box{0, 0, 100, 100}, 0.9, base)))

	// Object moved far away: IoU below threshold, anchor replaced.
	moved := Box{500, 500, 600, 600}
	assert.False(t, gate.Update(mustDetection(t, moved, 0.9, base.Add(600*time.Millisecond))))

	// Stability is now measured from the re-anchor time.
	assert.False(t, gate.Update(mustDetection(t, moved, 0.9, base.Add(900*time.Millisecond))))
	assert.True(t, gate.Update(mustDetection(t, moved, 0.9, base.Add(1200*time.Millisecond))))
}

func TestStabilityGate_StableBoxTracksLatest(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()
	anchor := Box{0, 0, 100, 100}

	gate.Update(mustDetection(t, anchor, 0.9, base))
	require.True(t, gate.Update(mustDetection(t, anchor, 0.9, base.Add(600*time.Millisecond))))

	// A slightly shifted but overlapping box arrives after stabilization.
	shifted := Box{5, 5, 105, 105}
	gate.Update(mustDetection(t, shifted, 0.9, base.Add(700*time.Millisecond)))

	got, ok := gate.StableBox()
	require.True(t, ok)
	assert.Equal(t, shifted, got, "cropping must use the newest box, not the anchor")
}

func TestStabilityGate_ResetRequiredBetweenFirings(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{})
	base := time.Now()
	box := Box{0, 0, 100, 100}

	gate.Update(mustDetection(t, box, 0.9, base))
	require.True(t, gate.Update(mustDetection(t, box, 0.9, base.Add(600*time.Millisecond))))

	// Without a reset the gate stays silent no matter how long the object sits.
	for i := 1; i <= 10; i++ {
		ts := base.Add(600*time.Millisecond + time.Duration(i)*time.Second)
		assert.False(t, gate.Update(mustDetection(t, box, 0.9, ts)))
	}

	gate.Reset()
	assert.False(t, gate.IsStable())

	// After reset the next placement stabilizes again.
	later := base.Add(30 * time.Second)
	gate.Update(mustDetection(t, box, 0.9, later))
	assert.True(t, gate.Update(mustDetection(t, box, 0.9, later.Add(600*time.Millisecond))))
}

func TestStabilityGate_ConfigFallbacks(t *testing.T) {
	t.Parallel()

	gate := NewStabilityGate(GateConfig{MinConfidence: -1, MinIoU: 2, StableDuration: -time.Second})
	assert.InDelta(t, DefaultMinConfidence, gate.cfg.MinConfidence, 1e-9)
	assert.InDelta(t, DefaultMinIoU, gate.cfg.MinIoU, 1e-9)
	assert.Equal(t, DefaultStableDuration, gate.cfg.StableDuration)
}
