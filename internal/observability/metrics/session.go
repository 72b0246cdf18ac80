package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics contains Prometheus metrics for sessions and state transitions.
type SessionMetrics struct {
	SessionsStarted   prometheus.Counter
	SessionsCompleted *prometheus.CounterVec
	SessionsTimedOut  prometheus.Counter
	SessionDuration   prometheus.Histogram
	StateTransitions  *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewSessionMetrics creates and registers session metrics on the registry.
func NewSessionMetrics(registry *prometheus.Registry) (*SessionMetrics, error) {
	m := &SessionMetrics{registry: registry}

	m.SessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_sessions_started_total",
		Help: "Total number of scan sessions started",
	})
	m.SessionsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_sessions_completed_total",
		Help: "Total number of scan sessions completed, by outcome (matched, empty)",
	}, []string{"outcome"})
	m.SessionsTimedOut = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_sessions_timed_out_total",
		Help: "Total number of scan sessions ended by timeout",
	})
	m.SessionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kiosk_session_duration_seconds",
		Help:    "Duration of completed scan sessions",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
	m.StateTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_state_transitions_total",
		Help: "Accepted state machine transitions by from/to state",
	}, []string{"from", "to"})

	collectors := []prometheus.Collector{
		m.SessionsStarted, m.SessionsCompleted, m.SessionsTimedOut,
		m.SessionDuration, m.StateTransitions,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register session metrics: %w", err)
		}
	}
	return m, nil
}
