// engine.go - Frontend API and the core-1-side plane composition loop
//
// Grounded in video_compositor.go's VideoCompositor: refreshLoop's
// ticker-paced dispatch becomes the per-scanline timingDriver consumer,
// and compositeScanlineAware's "collect sources, sort by layer, dispatch
// StartFrame/ProcessScanline(y)/FinishFrame" shape becomes renderLoop's
// per-plane Vblank/Render dispatch over an ordered plane list.

package video

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// Layered is implemented by planes that want explicit z-ordering within
// the engine's top-level plane list. Planes that don't implement it sort
// after all layered planes, in insertion order, mirroring VideoSource's
// GetLayer().
type Layered interface {
	Layer() int
}

// Engine owns the timing driver, ring buffer, backend sink and the
// top-level plane list, and is the only type application code talks to.
type Engine struct {
	mode    Mode
	backend Backend
	ring    *RingBuffer
	timing  *timingDriver

	mu          sync.Mutex // guards planes; taken briefly, never across a render call
	planes      []*PlaneRef
	vblankFn    func()
	actions     chan func()
	degraded    atomic.Bool
	scanlinesMissed atomic.Uint64

	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	currentScanline atomic.Int32
}

// NewEngine validates the mode and allocates the ring buffer, but does
// not start any goroutine — matching start_video's synchronous failure
// contract for UNSUPPORTED_SYSTEM_CLOCK / OUT_OF_MEMORY.
func NewEngine(mode Mode, backend Backend, bufferCount int) (*Engine, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if mode.PixelClockHz <= 0 {
		return nil, &EngineError{Operation: "start_video", Details: "pixel clock must be positive", Err: ErrUnsupportedSystemClock}
	}
	ring, err := NewRingBuffer(mode, bufferCount)
	if err != nil {
		return nil, err
	}
	return &Engine{
		mode:    mode,
		backend: backend,
		ring:    ring,
		timing:  newTimingDriver(mode),
		actions: make(chan func(), 64),
	}, nil
}

// Start launches the timing driver and the renderer loop and blocks
// until the renderer has acknowledged startup (the first vblank has
// been processed), matching start_video's "blocks until core 1 has
// acknowledged" contract.
func (e *Engine) Start() error {
	if e.started.Swap(true) {
		return nil
	}
	if err := e.backend.Start(); err != nil {
		e.started.Store(false)
		return &EngineError{Operation: "start_video", Details: "backend failed to start", Err: err}
	}
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	ack := make(chan struct{})
	go e.renderLoop(ack)
	e.timing.Start()
	<-ack
	return nil
}

// Stop is idempotent: it disables the timing driver, waits for the
// renderer loop to exit, then tears down the ring buffer and stops the
// backend. Planes still referenced by application code remain live; they
// simply stop being rendered.
func (e *Engine) Stop() error {
	if !e.started.Swap(false) {
		return nil
	}
	e.timing.Stop()
	close(e.stopCh)
	<-e.doneCh
	e.ring.Teardown()
	return e.backend.Stop()
}

// AddPlane inserts a plane into the top-level composition list. The
// returned PlaneRef starts with a reference count of 1 for the caller;
// the renderer's list entry retains it once more (count 2) when the add
// takes effect at the next vblank. If wait is true, it blocks until the
// renderer has observed the change (one vblank later).
func (e *Engine) AddPlane(p Plane, wait bool) *PlaneRef {
	ref := NewPlaneRef(p, nil)
	done := make(chan struct{})
	e.AddOneTimeAction(func() {
		e.mu.Lock()
		e.planes = append(e.planes, ref.Retain())
		sortPlanesByLayer(e.planes)
		e.mu.Unlock()
		close(done)
	})
	if wait {
		e.WaitForVblank()
		<-done
	}
	return ref
}

// RemovePlane unlinks a previously added plane. If wait is true, it
// blocks until the renderer has observed the removal.
func (e *Engine) RemovePlane(ref *PlaneRef, wait bool) {
	done := make(chan struct{})
	e.AddOneTimeAction(func() {
		e.mu.Lock()
		for i, r := range e.planes {
			if r == ref {
				e.planes = append(e.planes[:i], e.planes[i+1:]...)
				break
			}
		}
		e.mu.Unlock()
		ref.Release()
		close(done)
	})
	if wait {
		e.WaitForVblank()
		<-done
	}
}

// SetVblankAction registers a callback invoked every frame on the
// renderer goroutine, after the one-time-action queue drains and before
// any plane's Render runs.
func (e *Engine) SetVblankAction(fn func()) {
	e.mu.Lock()
	e.vblankFn = fn
	e.mu.Unlock()
}

// AddOneTimeAction enqueues a callback that runs exactly once, at the
// next vblank boundary, before per-plane Vblank dispatch — the only
// channel through which the application side may safely mutate plane
// tree state.
func (e *Engine) AddOneTimeAction(fn func()) {
	e.actions <- fn
}

// WaitForVblank blocks until the next vblank boundary is observed. It is
// a polling helper, matching the raster-position-estimator contract —
// no condition variable is needed since the frame counter only moves
// forward. Seq.After is used rather than != so the wait is correct even
// across the frame counter's wraparound.
func (e *Engine) WaitForVblank() {
	start := e.timing.CurrentFrame()
	for !e.timing.CurrentFrame().After(start) {
		runtime.Gosched()
	}
}

// WaitForScanline busy-polls the raster-position estimator until row n
// is reached in the current or a later frame. Comparison goes through
// Seq.Before for the same wraparound-safety reason as WaitForVblank,
// even though currentScanline resets every frame and never approaches
// the wraparound boundary in practice.
func (e *Engine) WaitForScanline(n int) {
	target := Seq(uint32(n))
	for Seq(uint32(e.currentScanline.Load())).Before(target) {
		runtime.Gosched()
	}
}

// CurrentScanline returns the raster-position estimate, free of any
// critical section, matching the backend's current_scanline() contract.
func (e *Engine) CurrentScanline() int32 { return e.currentScanline.Load() }

// ScanlinesMissed reports the running count of scanlines whose render
// overran its budget — a runtime degradation counter, never an error.
func (e *Engine) ScanlinesMissed() uint64 { return e.scanlinesMissed.Load() }

// Degrade simulates the flash-lockout window: while active, only planes
// implementing AlwaysRenderable are dispatched; others are skipped, so
// the ring buffer carries over stale content for those rows exactly as
// the lockout-window contract describes.
func (e *Engine) Degrade(on bool) { e.degraded.Store(on) }

// renderLoop is the renderer-goroutine body: drain one-time actions,
// dispatch Vblank, then for each active scanline composite the plane
// list into a ring buffer slot and hand it to the backend.
func (e *Engine) renderLoop(ack chan struct{}) {
	defer close(e.doneCh)
	acked := false
	for {
		select {
		case <-e.stopCh:
			return
		case ev := <-e.timing.events:
			switch ev.Phase {
			case PhaseActive:
				e.currentScanline.Store(int32(ev.Row))
				if ev.Row == 0 {
					e.drainActions()
					e.dispatchVblank()
				}
				e.renderRow(ev.Row)
				if !acked {
					close(ack)
					acked = true
				}
			default:
				if !acked {
					close(ack)
					acked = true
				}
			}
		}
	}
}

func (e *Engine) drainActions() {
	for {
		select {
		case fn := <-e.actions:
			fn()
		default:
			return
		}
	}
}

func (e *Engine) dispatchVblank() {
	e.mu.Lock()
	fn := e.vblankFn
	planes := append([]*PlaneRef(nil), e.planes...)
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
	for _, ref := range planes {
		if panicked := e.vblankPlane(ref.Plane()); panicked {
			e.scanlinesMissed.Add(1)
		}
	}
}

// vblankPlane dispatches one plane's Vblank, recovering a panic the way a
// hung scanline interrupt would be recovered on the real hardware: the
// offending plane's work is lost for this frame, but the renderer keeps
// running rather than taking the whole engine down with it.
func (e *Engine) vblankPlane(p Plane) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	p.Vblank()
	return false
}

// renderPlane dispatches one plane's Render, recovering a panic for the
// same reason vblankPlane does — a single misbehaving plane degrades to a
// missed scanline instead of crashing the renderer goroutine.
func (e *Engine) renderPlane(p Plane, row, width int, buf []uint32) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	p.Render(row, width, buf)
	return false
}

func (e *Engine) renderRow(row int) {
	logical, buf, ok := e.ring.BeginWrite()
	if !ok {
		e.scanlinesMissed.Add(1)
		return
	}
	degraded := e.degraded.Load()
	e.mu.Lock()
	planes := e.planes
	e.mu.Unlock()
	for _, ref := range planes {
		p := ref.Plane()
		if degraded {
			if ar, isAR := p.(AlwaysRenderable); !isAR || !ar.AlwaysRenderable() {
				continue
			}
		}
		if panicked := e.renderPlane(p, row, e.mode.Width, buf); panicked {
			e.scanlinesMissed.Add(1)
		}
	}
	e.ring.FinishWrite(logical)
	e.backend.Present(row, buf)
	// Present consumes buf synchronously (every Backend implementation is
	// done with buf before returning), so the slot is immediately
	// releasable — this is the renderer standing in for the DMA engine's
	// own BeginRead/FinishRead release once it has drained the slot.
	if readLogical, _, ok := e.ring.BeginRead(); ok {
		e.ring.FinishRead(readLogical)
	}
	if row == e.mode.Height<<e.mode.VSS-1 {
		e.backend.FrameComplete()
	}
}

func sortPlanesByLayer(planes []*PlaneRef) {
	// Bubble sort mirrors compositeScanlineAware's own layer sort — the
	// plane lists here are tiny (single digits), so O(n^2) is fine and
	// keeps the comparison stable without importing sort for 3 lines.
	for i := 0; i < len(planes); i++ {
		for j := 0; j < len(planes)-i-1; j++ {
			if layerOf(planes[j]) > layerOf(planes[j+1]) {
				planes[j], planes[j+1] = planes[j+1], planes[j]
			}
		}
	}
}

func layerOf(ref *PlaneRef) int {
	if l, ok := ref.Plane().(Layered); ok {
		return l.Layer()
	}
	return math.MaxInt
}
