package detection

import (
	"image"
	"sync"
)

// FakeVisionModel is a scripted VisionModel for development machines and
// tests where no inference hardware is present. Each Infer call returns the
// next scripted frame; after the script is exhausted it keeps returning the
// last frame (or nothing when looping is off and the script ended).
type FakeVisionModel struct {
	mu     sync.Mutex
	script [][]RawDetection
	index  int
	Loop   bool
}

// NewFakeVisionModel creates a fake model that replays the given frames.
func NewFakeVisionModel(script ...[]RawDetection) *FakeVisionModel {
	return &FakeVisionModel{script: script}
}

// Infer returns the next scripted frame. Never returns nil.
func (f *FakeVisionModel) Infer(_ image.Image) []RawDetection {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.script) == 0 {
		return []RawDetection{}
	}
	if f.index >= len(f.script) {
		if f.Loop {
			f.index = 0
		} else {
			return []RawDetection{}
		}
	}
	frame := f.script[f.index]
	f.index++
	if frame == nil {
		return []RawDetection{}
	}
	out := make([]RawDetection, len(frame))
	copy(out, frame)
	return out
}
