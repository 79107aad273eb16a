// headless_backend.go - Test backend
//
// Adapted from video_backend_headless.go's HeadlessVideoOutput: same
// atomic frame counter, same no-op lifecycle, now implementing
// video.Backend's per-scanline Present instead of whole-buffer
// UpdateFrame.

package headlessbackend

import "sync/atomic"

// Output is a no-op backend used by every non-graphical test: it counts
// presented scanlines and completed frames without touching a display.
type Output struct {
	started       bool
	refreshRate   int
	frameCount    uint64
	scanlineCount atomic.Uint64

	// Captured, if set, receives each presented row's slot exactly as
	// passed to Present (not a copy; it is only valid during the call) —
	// tests use this to assert on rendered pixel content without a real
	// display.
	Captured func(row int, buf []uint32)
}

// New builds an unstarted headless backend.
func New() *Output {
	return &Output{refreshRate: 60}
}

func (h *Output) Start() error {
	h.started = true
	return nil
}

func (h *Output) Stop() error {
	h.started = false
	return nil
}

func (h *Output) IsStarted() bool { return h.started }

func (h *Output) Present(row int, buf []uint32) {
	h.scanlineCount.Add(1)
	if h.Captured != nil {
		h.Captured(row, buf)
	}
}

func (h *Output) FrameComplete() {
	atomic.AddUint64(&h.frameCount, 1)
}

func (h *Output) WaitForVSync() error { return nil }

func (h *Output) FrameCount() uint64 { return atomic.LoadUint64(&h.frameCount) }

func (h *Output) ScanlineCount() uint64 { return h.scanlineCount.Load() }

func (h *Output) RefreshRate() int {
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}
