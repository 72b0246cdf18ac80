package detection

import (
	"image"
	"time"

	"github.com/agrovision/kiosk-go/internal/logging"
)

// RawDetection is one raw result from the vision model.
type RawDetection struct {
	Left       float64
	Top        float64
	Right      float64
	Bottom     float64
	Confidence float64
	ClassID    int
}

// VisionModel is the black-box inference boundary. Implementations must be
// synchronous, must return an empty slice rather than nil, and must not
// retain the image past the call.
type VisionModel interface {
	Infer(img image.Image) []RawDetection
}

// Detector adapts raw model output into timestamped Detection values.
type Detector struct {
	model VisionModel
}

// NewDetector wraps a vision model.
func NewDetector(model VisionModel) *Detector {
	return &Detector{model: model}
}

// Detect runs inference and converts the raw output. Malformed raw
// detections are dropped rather than propagated; the result is never nil.
func (d *Detector) Detect(img image.Image) []Detection {
	timestamp := time.Now()

	raw := d.model.Infer(img)
	if len(raw) == 0 {
		return []Detection{}
	}

	results := make([]Detection, 0, len(raw))
	for _, r := range raw {
		det, err := NewDetection(Box{
			Left:   r.Left,
			Top:    r.Top,
			Right:  r.Right,
			Bottom: r.Bottom,
		}, r.Confidence, r.ClassID, timestamp)
		if err != nil {
			logging.Debug("dropping malformed raw detection", "error", err)
			continue
		}
		results = append(results, det)
	}
	return results
}

// Best returns a pointer to the highest-confidence detection, or nil when
// the slice is empty.
func Best(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}
	best := dets[0]
	for _, d := range dets[1:] {
		if d.Confidence() > best.Confidence() {
			best = d
		}
	}
	return &best
}
