package detection

import (
	"log/slog"
	"time"

	"github.com/agrovision/kiosk-go/internal/logging"
)

// Stability gate defaults. Overridable through GateConfig; invalid overrides
// fall back to these values.
const (
	DefaultMinConfidence  = 0.50
	DefaultMinIoU         = 0.6
	DefaultStableDuration = 500 * time.Millisecond
)

// GateConfig holds the thresholds for the stability gate.
type GateConfig struct {
	MinConfidence  float64       // detections below this reset the gate
	MinIoU         float64       // overlap with the anchor required to stay stable
	StableDuration time.Duration // sustained overlap required before trusting
}

// normalized returns the config with invalid values replaced by defaults.
func (c GateConfig) normalized(log *slog.Logger) GateConfig {
	if c.MinConfidence <= 0 || c.MinConfidence > 1 {
		log.Warn("invalid gate confidence threshold, using default",
			"value", c.MinConfidence, "default", DefaultMinConfidence)
		c.MinConfidence = DefaultMinConfidence
	}
	if c.MinIoU <= 0 || c.MinIoU > 1 {
		log.Warn("invalid gate IoU threshold, using default",
			"value", c.MinIoU, "default", DefaultMinIoU)
		c.MinIoU = DefaultMinIoU
	}
	if c.StableDuration <= 0 {
		log.Warn("invalid gate stable duration, using default",
			"value", c.StableDuration, "default", DefaultStableDuration)
		c.StableDuration = DefaultStableDuration
	}
	return c
}

// StabilityGate tracks the temporal stability of detections and reports, at
// most once per physical placement, the moment a detection becomes
// trustworthy.
//
// Stability is evaluated against an anchor box; cropping always uses the most
// recent box. The gate is not safe for concurrent use: it is driven
// exclusively by the single detection-lane worker.
type StabilityGate struct {
	cfg GateConfig
	log *slog.Logger

	anchorBox   *Box
	latestBox   *Box
	stableSince time.Time
	stable      bool
}

// NewStabilityGate creates a gate with the given thresholds. Invalid values
// fall back to the defaults.
func NewStabilityGate(cfg GateConfig) *StabilityGate {
	log := logging.ForService("stability-gate")
	return &StabilityGate{
		cfg: cfg.normalized(log),
		log: log,
	}
}

// Reset clears all tracking state. Callers must invoke it after consuming a
// stabilization event so the next placement starts clean.
func (g *StabilityGate) Reset() {
	g.anchorBox = nil
	g.latestBox = nil
	g.stableSince = time.Time{}
	g.stable = false
}

// Update feeds a detection into the gate and returns true exactly once per
// stabilization, on the call that crosses the stable-duration threshold.
// A nil detection or one below the confidence floor resets the gate.
func (g *StabilityGate) Update(det *Detection) bool {
	if det == nil || det.Confidence() < g.cfg.MinConfidence {
		g.Reset()
		return false
	}

	box := det.Box()
	timestamp := det.Timestamp()

	// Latest box always tracks the newest observation.
	g.latestBox = &box

	if g.anchorBox == nil {
		g.anchorBox = &box
		g.stableSince = timestamp
		g.stable = false
		return false
	}

	if IoU(*g.anchorBox, box) < g.cfg.MinIoU {
		// Movement too large, re-anchor.
		g.anchorBox = &box
		g.stableSince = timestamp
		g.stable = false
		return false
	}

	if !g.stable && timestamp.Sub(g.stableSince) >= g.cfg.StableDuration {
		g.stable = true
		g.log.Debug("detection stabilized",
			"stable_for", timestamp.Sub(g.stableSince),
			"confidence", det.Confidence())
		return true
	}

	return false
}

// IsStable reports whether the gate currently trusts the detection.
func (g *StabilityGate) IsStable() bool {
	return g.stable
}

// StableBox returns a copy of the most recent box while stable, and false
// otherwise. The returned box is safe for cropping.
func (g *StabilityGate) StableBox() (Box, bool) {
	if !g.stable || g.latestBox == nil {
		return Box{}, false
	}
	return *g.latestBox, true
}
