// Package pipeline wires the scanning core together: frames in, state
// machine events and session entries out. One Pipeline instance owns the
// detection and recognition lanes and is the only writer to the stability
// gate.
package pipeline

import (
	"image"
	"image/draw"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/agrovision/kiosk-go/internal/analytics"
	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/detection"
	"github.com/agrovision/kiosk-go/internal/idle"
	"github.com/agrovision/kiosk-go/internal/logging"
	"github.com/agrovision/kiosk-go/internal/observability/metrics"
	"github.com/agrovision/kiosk-go/internal/resolver"
	"github.com/agrovision/kiosk-go/internal/session"
	"github.com/agrovision/kiosk-go/internal/state"
	"github.com/agrovision/kiosk-go/internal/taskqueue"
)

// Pipeline turns camera frames into resolved scans. Frames enter through
// OnFrame, heavy work runs on the lanes, and results surface as state
// machine events and session entries.
type Pipeline struct {
	detector   *detection.Detector
	gate       *detection.StabilityGate
	recognizer Recognizer
	resolver   *resolver.Resolver

	catalog  *catalog.Catalog
	queues   *taskqueue.Queues
	machine  *state.Machine
	sessions *session.Manager
	idler    *idle.Controller
	holder   *ScanHolder
	tracker  *analytics.Tracker
	metrics  *metrics.PipelineMetrics
	log      *slog.Logger

	frameBusy atomic.Bool
	recogBusy atomic.Bool
}

// Deps bundles the collaborators a Pipeline needs. Tracker and Metrics
// may be nil.
type Deps struct {
	Model      detection.VisionModel
	Recognizer Recognizer
	Catalog    *catalog.Catalog
	Queues     *taskqueue.Queues
	Machine    *state.Machine
	Sessions   *session.Manager
	Idler      *idle.Controller
	Tracker    *analytics.Tracker
	Metrics    *metrics.PipelineMetrics
}

// New builds a pipeline from settings and collaborators.
func New(settings conf.KioskSettings, deps Deps) *Pipeline {
	p := &Pipeline{
		detector: detection.NewDetector(deps.Model),
		gate: detection.NewStabilityGate(detection.GateConfig{
			MinConfidence:  settings.Vision.MinConfidence,
			MinIoU:         settings.Vision.MinIoU,
			StableDuration: settings.Vision.StableDuration,
		}),
		recognizer: deps.Recognizer,
		resolver:   resolver.New(deps.Catalog, settings.Match),
		catalog:    deps.Catalog,
		queues:     deps.Queues,
		machine:    deps.Machine,
		sessions:   deps.Sessions,
		idler:      deps.Idler,
		holder:     NewScanHolder(),
		tracker:    deps.Tracker,
		metrics:    deps.Metrics,
		log:        logging.ForService("pipeline"),
	}
	if p.machine != nil {
		// Ready and Idle are the states with no scan in progress and no
		// result on display. Anything still in the holder at that point is
		// stale, including scans ended by a session timeout rather than by
		// CompleteScan.
		p.machine.AddTransitionHook(func(_, to state.AppState, _ state.Event) {
			if to == state.Ready || to == state.Idle {
				p.holder.Clear()
			}
		})
	}
	return p
}

// Holder exposes the transient scan memory for the UI layer.
func (p *Pipeline) Holder() *ScanHolder {
	return p.holder
}

// OnFrame offers one camera frame to the pipeline. It never blocks: when
// the previous frame is still being admitted the new one is skipped, and
// the detection lane applies its own drop-oldest policy on top. The frame
// is copied before anything asynchronous touches it, so the caller may
// reuse or release its buffer as soon as OnFrame returns.
func (p *Pipeline) OnFrame(img image.Image) {
	if p.metrics != nil {
		p.metrics.FramesSeen.Inc()
	}
	if img == nil {
		return
	}
	if !p.frameBusy.CompareAndSwap(false, true) {
		if p.metrics != nil {
			p.metrics.FramesSkipped.Inc()
		}
		return
	}

	frame := cloneFrame(img)
	accepted := p.queues.Detection.Submit(taskqueue.Task{
		Name: "detect-frame",
		Run: func() {
			defer p.frameBusy.Store(false)
			p.analyzeFrame(frame)
		},
	})
	if !accepted {
		p.frameBusy.Store(false)
	}
}

// Tick drives the polled timers. Call it from the frame loop.
func (p *Pipeline) Tick() {
	p.sessions.Tick()
	p.idler.Tick()
}

// CompleteScan ends the current session on operator request and clears
// the transient scan memory.
func (p *Pipeline) CompleteScan() []catalog.Entry {
	sessionID, _, _ := p.sessions.Current()
	entries := p.sessions.CompleteSession()
	p.holder.Clear()
	if p.tracker != nil && sessionID != "" {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		p.tracker.TrackSessionSummary(sessionID, ids)
	}
	return entries
}

// analyzeFrame runs on the detection lane.
func (p *Pipeline) analyzeFrame(img image.Image) {
	start := time.Now()
	dets := p.detector.Detect(img)
	best := detection.Best(dets)
	if p.metrics != nil {
		p.metrics.DetectionTime.Observe(time.Since(start).Seconds())
	}

	if best == nil {
		p.onObjectAbsent()
		return
	}

	if p.metrics != nil {
		p.metrics.Detections.Inc()
	}
	p.idler.OnActivity()
	p.sessions.MarkActivity()
	p.machine.Transition(state.ObjectDetected)

	if p.gate.Update(best) {
		if p.metrics != nil {
			p.metrics.Stabilizations.Inc()
		}
		box, _ := p.gate.StableBox()
		p.gate.Reset()
		p.onStabilized(img, box)
	}
}

// onObjectAbsent resets the gate and tells the machine the tray is empty.
func (p *Pipeline) onObjectAbsent() {
	p.gate.Reset()
	p.machine.Transition(state.ObjectRemoved)
}

// onStabilized crops the stable box and hands it to the recognition lane.
// At most one recognition request is outstanding at any time; further
// stabilizations are ignored until the current one resolves.
func (p *Pipeline) onStabilized(img image.Image, box detection.Box) {
	if !p.recogBusy.CompareAndSwap(false, true) {
		return
	}

	crop := cropImage(img, box)
	p.holder.SetCrop(crop)

	accepted := p.queues.Recognition.Submit(taskqueue.Task{
		Name: "recognize-crop",
		Run:  func() { p.runRecognition(crop) },
	})
	if !accepted {
		p.recogBusy.Store(false)
	}
}

// runRecognition runs on the recognition lane. The recognizer delivers
// its text asynchronously; the busy flag is released only when the result
// has been handled, keeping the single-outstanding-request invariant.
// A recognizer that panics before invoking its callback still releases
// the flag, so the next stabilization can retry.
func (p *Pipeline) runRecognition(crop image.Image) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.recogBusy.Store(false)
			p.log.Error("recognizer panicked, no result this cycle", "panic", r)
		}
	}()
	p.recognizer.Recognize(crop, func(text string, err error) {
		defer p.recogBusy.Store(false)
		if p.metrics != nil {
			p.metrics.Recognitions.Inc()
			p.metrics.RecognitionTime.Observe(time.Since(start).Seconds())
		}
		if err != nil {
			// no result this cycle; the next stabilization retries
			p.log.Warn("recognition failed", "error", err)
			return
		}
		p.handleText(text)
	})
}

// handleText resolves recognized text and feeds the session and machine.
func (p *Pipeline) handleText(text string) {
	p.holder.SetRawText(text)
	result := p.resolver.ResolveOne(text)
	p.holder.SetResult(result)
	p.recordOutcome(result)

	if !result.Known {
		p.machine.Transition(state.MatchNotFound)
		return
	}

	entry, ok := p.catalog.ByID(result.ID)
	if !ok {
		p.machine.Transition(state.MatchNotFound)
		return
	}

	if _, _, active := p.sessions.Current(); !active {
		p.sessions.StartNewSession()
	}
	p.sessions.AddEntry(entry)
	sessionID, _, _ := p.sessions.Current()
	if p.tracker != nil {
		p.tracker.TrackScanResolved(sessionID, entry.ID, result.RawText)
	}
	p.machine.Transition(state.MatchFound)
}

func (p *Pipeline) recordOutcome(result resolver.ScanResult) {
	if p.metrics == nil {
		return
	}
	switch {
	case !result.Known:
		p.metrics.MatchOutcomes.WithLabelValues("none").Inc()
	case result.Confidence >= 1:
		p.metrics.MatchOutcomes.WithLabelValues("exact").Inc()
	default:
		p.metrics.MatchOutcomes.WithLabelValues("fuzzy").Inc()
	}
}

// subImager is implemented by the stdlib image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropImage extracts the box region, clamped to the frame bounds. Images
// that cannot be cropped are passed through whole.
func cropImage(img image.Image, box detection.Box) image.Image {
	rect := image.Rect(int(box.Left), int(box.Top), int(box.Right), int(box.Bottom))
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return img
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	return img
}

// cloneFrame copies a frame into a fresh buffer, detaching it from the
// caller's pixel storage.
func cloneFrame(img image.Image) image.Image {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}
