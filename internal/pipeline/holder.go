package pipeline

import (
	"image"
	"sync"

	"github.com/agrovision/kiosk-go/internal/resolver"
)

// ScanHolder is the transient memory of the scan currently on screen: the
// stabilized crop, the text read from it, and the resolved result. It is
// cleared whenever the session ends so no product data outlives a visit.
type ScanHolder struct {
	mu      sync.Mutex
	crop    image.Image
	rawText string
	result  *resolver.ScanResult
}

// NewScanHolder builds an empty holder.
func NewScanHolder() *ScanHolder {
	return &ScanHolder{}
}

// SetCrop stores the stabilized crop.
func (h *ScanHolder) SetCrop(img image.Image) {
	h.mu.Lock()
	h.crop = img
	h.mu.Unlock()
}

// SetRawText stores the recognized text.
func (h *ScanHolder) SetRawText(text string) {
	h.mu.Lock()
	h.rawText = text
	h.mu.Unlock()
}

// SetResult stores the resolved scan result.
func (h *ScanHolder) SetResult(result resolver.ScanResult) {
	h.mu.Lock()
	h.result = &result
	h.mu.Unlock()
}

// Current returns the raw text and resolved result of the scan on screen.
func (h *ScanHolder) Current() (rawText string, result *resolver.ScanResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.result == nil {
		return h.rawText, nil
	}
	copied := *h.result
	return h.rawText, &copied
}

// Crop returns the stored crop, or nil.
func (h *ScanHolder) Crop() image.Image {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.crop
}

// Clear wipes all transient scan memory.
func (h *ScanHolder) Clear() {
	h.mu.Lock()
	h.crop = nil
	h.rawText = ""
	h.result = nil
	h.mu.Unlock()
}
