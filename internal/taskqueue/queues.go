package taskqueue

import (
	"time"

	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/errors"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
)

// Lane names used across the pipeline.
const (
	LaneDetection   = "detection"
	LaneRecognition = "recognition"
	LaneIO          = "io"
)

// Queues bundles the three stage lanes of the kiosk pipeline.
type Queues struct {
	Detection   *Lane
	Recognition *Lane
	IO          *Lane
}

// NewQueues builds the three lanes from settings. The metrics argument may
// be nil.
func NewQueues(settings conf.QueuesSettings, m *metrics.TaskQueueMetrics) *Queues {
	return &Queues{
		Detection:   NewLane(LaneDetection, settings.Detection.Capacity, DropOldest, m),
		Recognition: NewLane(LaneRecognition, settings.Recognition.Capacity, DropOldest, m),
		IO:          NewLane(LaneIO, settings.IO.Capacity, DropNewest, m),
	}
}

// Shutdown stops all lanes, collecting any timeout errors.
func (q *Queues) Shutdown(timeout time.Duration) error {
	return errors.Join(
		q.Detection.Shutdown(timeout),
		q.Recognition.Shutdown(timeout),
		q.IO.Shutdown(timeout),
	)
}
