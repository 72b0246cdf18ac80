// Package observability provides Prometheus metrics for the kiosk application.
package observability

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry  *prometheus.Registry
	Pipeline  *metrics.PipelineMetrics
	TaskQueue *metrics.TaskQueueMetrics
	Session   *metrics.SessionMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all collectors
// on a dedicated registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	pipelineMetrics, err := metrics.NewPipelineMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	taskQueueMetrics, err := metrics.NewTaskQueueMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create task queue metrics: %w", err)
	}

	sessionMetrics, err := metrics.NewSessionMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create session metrics: %w", err)
	}

	return &Metrics{
		registry:  registry,
		Pipeline:  pipelineMetrics,
		TaskQueue: taskQueueMetrics,
		Session:   sessionMetrics,
	}, nil
}

// RegisterHandlers registers the metrics endpoint with the provided mux.
func (m *Metrics) RegisterHandlers(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Endpoint serves the Prometheus metrics over HTTP.
type Endpoint struct {
	server        *http.Server
	listenAddress string
	metrics       *Metrics
}

// NewEndpoint creates a telemetry endpoint for the given listen address.
func NewEndpoint(listenAddress string, m *Metrics) *Endpoint {
	return &Endpoint{
		listenAddress: listenAddress,
		metrics:       m,
	}
}

// Start runs the HTTP server in a goroutine and shuts it down when quitChan
// closes.
func (e *Endpoint) Start(wg *sync.WaitGroup, quitChan <-chan struct{}) {
	log := logging.ForService("observability")

	mux := http.NewServeMux()
	e.metrics.RegisterHandlers(mux)

	e.server = &http.Server{
		Addr:              e.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("telemetry endpoint starting", "address", e.listenAddress)
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("telemetry HTTP server error", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-quitChan
		if err := e.server.Close(); err != nil {
			log.Error("error closing telemetry endpoint", "error", err)
		}
	}()
}
