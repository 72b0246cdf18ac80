package pipeline

import (
	"image"
	"sync"
)

// Recognizer extracts text from a cropped product image. Implementations
// are asynchronous: Recognize returns immediately and delivers the result
// through the callback, possibly from another goroutine. The pipeline
// guarantees at most one outstanding request.
type Recognizer interface {
	Recognize(img image.Image, callback func(text string, err error))
}

// FakeRecognizer replays scripted texts, one per request. After the
// script is exhausted it keeps repeating the last entry, or returns empty
// text when the script is empty. Useful for development without OCR
// hardware.
type FakeRecognizer struct {
	mu    sync.Mutex
	texts []string
	next  int
}

// NewFakeRecognizer builds a recognizer replaying the given texts.
func NewFakeRecognizer(texts ...string) *FakeRecognizer {
	return &FakeRecognizer{texts: texts}
}

// Recognize delivers the next scripted text synchronously.
func (f *FakeRecognizer) Recognize(_ image.Image, callback func(text string, err error)) {
	f.mu.Lock()
	var text string
	if len(f.texts) > 0 {
		if f.next >= len(f.texts) {
			f.next = len(f.texts) - 1
		}
		text = f.texts[f.next]
		f.next++
	}
	f.mu.Unlock()
	callback(text, nil)
}
