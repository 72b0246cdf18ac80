// Package metrics provides custom Prometheus metrics for the kiosk pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics contains Prometheus metrics for the vision pipeline.
type PipelineMetrics struct {
	FramesSeen       prometheus.Counter
	FramesSkipped    prometheus.Counter
	Detections       prometheus.Counter
	Stabilizations   prometheus.Counter
	Recognitions     prometheus.Counter
	MatchOutcomes    *prometheus.CounterVec
	RecognitionTime  prometheus.Histogram
	DetectionTime    prometheus.Histogram
	registry         *prometheus.Registry
}

// NewPipelineMetrics creates and registers pipeline metrics on the registry.
func NewPipelineMetrics(registry *prometheus.Registry) (*PipelineMetrics, error) {
	m := &PipelineMetrics{registry: registry}

	m.FramesSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_frames_seen_total",
		Help: "Total number of camera frames offered to the pipeline",
	})
	m.FramesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_frames_skipped_total",
		Help: "Total number of frames skipped because the pipeline entry point was busy",
	})
	m.Detections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_detections_total",
		Help: "Total number of detections above the confidence floor",
	})
	m.Stabilizations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_stabilizations_total",
		Help: "Total number of edge-triggered stabilization events",
	})
	m.Recognitions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kiosk_recognitions_total",
		Help: "Total number of completed text-recognition cycles",
	})
	m.MatchOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kiosk_match_outcomes_total",
		Help: "Match outcomes by type (exact, fuzzy, none)",
	}, []string{"outcome"})
	m.DetectionTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kiosk_detection_duration_seconds",
		Help:    "Duration of one detection-lane task",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
	m.RecognitionTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kiosk_recognition_duration_seconds",
		Help:    "Duration of one recognition-lane task",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	collectors := []prometheus.Collector{
		m.FramesSeen, m.FramesSkipped, m.Detections, m.Stabilizations,
		m.Recognitions, m.MatchOutcomes, m.DetectionTime, m.RecognitionTime,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register pipeline metrics: %w", err)
		}
	}
	return m, nil
}
