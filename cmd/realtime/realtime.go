// Package realtime implements the realtime kiosk scanning command.
package realtime

import (
	"fmt"
	"image"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrovision/kiosk-go/internal/analytics"
	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/datastore"
	"github.com/agrovision/kiosk-go/internal/detection"
	"github.com/agrovision/kiosk-go/internal/idle"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/mqtt"
	"github.com/agrovision/kiosk-go/internal/observability"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
	"github.com/agrovision/kiosk-go/internal/pipeline"
	"github.com/agrovision/kiosk-go/internal/session"
	"github.com/agrovision/kiosk-go/internal/state"
	"github.com/agrovision/kiosk-go/internal/taskqueue"
)

const frameInterval = 100 * time.Millisecond

// Command returns the realtime command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "realtime",
		Short: "Run the kiosk scanning loop",
		Long:  "Runs the full scanning pipeline. Without camera and OCR hardware it drives scripted fake implementations, which is useful on development machines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRealtime(settings)
		},
	}
}

func runRealtime(settings *conf.Settings) error {
	log := logging.ForService("realtime")
	log.Info("kiosk starting", "name", settings.Main.Name)

	machine := state.NewMachine()

	var obs *observability.Metrics
	if settings.Kiosk.Telemetry.Enabled {
		m, err := observability.NewMetrics()
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}
		obs = m
	}

	queues := taskqueue.NewQueues(settings.Kiosk.Queues, taskQueueMetrics(obs))
	defer func() {
		if err := queues.Shutdown(5 * time.Second); err != nil {
			log.Warn("lane shutdown incomplete", "error", err)
		}
	}()

	cat := catalog.Load(settings.Kiosk.Catalog.Path)
	sessions := session.NewManager(settings.Kiosk.Session, machine, sessionMetrics(obs))
	idler := idle.NewController(settings.Kiosk.Idle.Timeout, machine)

	tracker, cleanup, err := buildAnalytics(settings, cat, queues)
	if err != nil {
		return err
	}
	defer cleanup()

	machine.AddTransitionHook(func(from, to state.AppState, event state.Event) {
		log.Info("state transition", "from", from.String(), "to", to.String(), "event", event.String())
		if tracker != nil {
			tracker.TrackTransition(from.String(), to.String(), event.String())
		}
		if obs != nil {
			obs.Session.StateTransitions.WithLabelValues(from.String(), to.String()).Inc()
		}
	})

	p := pipeline.New(settings.Kiosk, pipeline.Deps{
		Model:      demoModel(),
		Recognizer: demoRecognizer(),
		Catalog:    cat,
		Queues:     queues,
		Machine:    machine,
		Sessions:   sessions,
		Idler:      idler,
		Tracker:    tracker,
		Metrics:    pipelineMetrics(obs),
	})

	var wg sync.WaitGroup
	quit := make(chan struct{})

	if settings.Kiosk.Telemetry.Enabled && obs != nil {
		observability.NewEndpoint(settings.Kiosk.Telemetry.Listen, obs).Start(&wg, quit)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// one reusable buffer; OnFrame copies before going asynchronous
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for {
		select {
		case <-ticker.C:
			p.OnFrame(frame)
			p.Tick()
		case sig := <-sigChan:
			log.Info("shutting down", "signal", sig.String())
			close(quit)
			wg.Wait()
			return nil
		}
	}
}

// buildAnalytics wires the datastore, MQTT publisher and event tracker
// according to settings. The returned cleanup closes whatever was opened.
func buildAnalytics(settings *conf.Settings, cat *catalog.Catalog, queues *taskqueue.Queues) (*analytics.Tracker, func(), error) {
	log := logging.ForService("realtime")

	var store datastore.Store
	if settings.Kiosk.Datastore.Enabled {
		sqlStore := datastore.NewSQLiteStore(settings.Kiosk.Datastore.Path)
		if err := sqlStore.Open(); err != nil {
			return nil, func() {}, err
		}
		if err := sqlStore.SaveProducts(cat.Entries()); err != nil {
			log.Warn("persisting catalog snapshot", "error", err)
		}
		store = sqlStore
	} else {
		store = datastore.NewMockStore()
	}

	var publisher *mqtt.Publisher
	if settings.Kiosk.MQTT.Enabled {
		publisher = mqtt.NewPublisher(settings.Kiosk.MQTT)
		if err := publisher.Connect(); err != nil {
			// telemetry is optional; run without it
			log.Warn("mqtt unavailable", "error", err)
			publisher = nil
		}
	}

	tracker := analytics.NewTracker(store, queues.IO, publisher, 0)
	cleanup := func() {
		if publisher != nil {
			publisher.Disconnect()
		}
		if err := store.Close(); err != nil {
			log.Warn("closing datastore", "error", err)
		}
	}
	return tracker, cleanup, nil
}

// demoModel scripts a product being placed, held steady, and removed.
func demoModel() detection.VisionModel {
	held := []detection.RawDetection{{Left: 180, Top: 120, Right: 460, Bottom: 380, Confidence: 0.92}}
	script := make([][]detection.RawDetection, 0, 40)
	for i := 0; i < 12; i++ {
		script = append(script, held)
	}
	for i := 0; i < 8; i++ {
		script = append(script, nil)
	}
	model := detection.NewFakeVisionModel(script...)
	model.Loop = true
	return model
}

func demoRecognizer() pipeline.Recognizer {
	return pipeline.NewFakeRecognizer(
		"GreenLeaf NEEM OIL SPRAY 500 ml",
		"Copper Fungicide wettable powder",
		"some unreadable smudged label",
	)
}

func taskQueueMetrics(obs *observability.Metrics) *metrics.TaskQueueMetrics {
	if obs == nil {
		return nil
	}
	return obs.TaskQueue
}

func sessionMetrics(obs *observability.Metrics) *metrics.SessionMetrics {
	if obs == nil {
		return nil
	}
	return obs.Session
}

func pipelineMetrics(obs *observability.Metrics) *metrics.PipelineMetrics {
	if obs == nil {
		return nil
	}
	return obs.Pipeline
}
