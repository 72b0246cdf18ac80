package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// TaskQueueMetrics contains Prometheus metrics for the bounded stage queues.
type TaskQueueMetrics struct {
	Submitted *prometheus.CounterVec
	Executed  *prometheus.CounterVec
	Dropped   *prometheus.CounterVec
	Panics    *prometheus.CounterVec
	registry  *prometheus.Registry
}

// NewTaskQueueMetrics creates and registers task-queue metrics on the registry.
// All vectors are labelled by lane name.
func NewTaskQueueMetrics(registry *prometheus.Registry) (*TaskQueueMetrics, error) {
	m := &TaskQueueMetrics{registry: registry}

	m.Submitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_lane_tasks_submitted_total",
		Help: "Total number of tasks submitted per lane",
	}, []string{"lane"})
	m.Executed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_lane_tasks_executed_total",
		Help: "Total number of tasks executed per lane",
	}, []string{"lane"})
	m.Dropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_lane_tasks_dropped_total",
		Help: "Total number of tasks dropped by lane admission policy",
	}, []string{"lane"})
	m.Panics = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_lane_task_panics_total",
		Help: "Total number of recovered task panics per lane",
	}, []string{"lane"})

	collectors := []prometheus.Collector{m.Submitted, m.Executed, m.Dropped, m.Panics}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register task queue metrics: %w", err)
		}
	}
	return m, nil
}
