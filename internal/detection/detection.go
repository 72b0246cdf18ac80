// Package detection provides the domain model for object detections and the
// temporal stability gate that decides when a detection can be trusted.
package detection

import (
	"time"

	"github.com/agrovision/kiosk-go/internal/errors"
)

// Detection is an immutable detection observed on one camera frame.
// The timestamp carries a monotonic clock reading; all duration arithmetic
// on detections must go through time.Time's monotonic component.
type Detection struct {
	box        Box
	confidence float64
	classID    int
	timestamp  time.Time
}

// NewDetection validates the inputs and constructs a Detection.
// Confidence outside [0,1] and non-positive boxes are rejected at the
// boundary so downstream code never sees malformed values.
func NewDetection(box Box, confidence float64, classID int, timestamp time.Time) (Detection, error) {
	if confidence < 0 || confidence > 1 {
		return Detection{}, errors.Newf("confidence must be between 0.0 and 1.0, got %f", confidence).
			Component("detection").
			Category(errors.CategoryValidation).
			Build()
	}
	if !box.IsValid() {
		return Detection{}, errors.Newf("bounding box has no extent: %+v", box).
			Component("detection").
			Category(errors.CategoryValidation).
			Build()
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return Detection{
		box:        box,
		confidence: confidence,
		classID:    classID,
		timestamp:  timestamp,
	}, nil
}

// Box returns a copy of the bounding box.
func (d Detection) Box() Box {
	return d.box
}

// Confidence returns the detection confidence in [0,1].
func (d Detection) Confidence() float64 {
	return d.confidence
}

// ClassID returns the model class id.
func (d Detection) ClassID() int {
	return d.classID
}

// Timestamp returns the monotonic capture timestamp.
func (d Detection) Timestamp() time.Time {
	return d.timestamp
}
