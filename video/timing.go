// timing.go - Horizontal/vertical timing state machine
//
// Grounded in video_compositor.go's refreshLoop (time.NewTicker + select)
// generalized from whole-frame to per-scanline granularity, and in
// compositeScanlineAware's existing StartFrame/ProcessScanline(y)/
// FinishFrame shape — the teacher already paces a frame on a ticker; this
// repaces it one scanline at a time and adds the four blanking phases
// the original PIO program cycles through.

package video

import (
	"sync/atomic"
	"time"
)

// Phase names one of the four microprograms the timing driver cycles
// through every frame.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseFrontPorch
	PhaseVSyncPulse
	PhaseBackPorch
)

// scanlineEvent is delivered once per raster line. Row is only
// meaningful during PhaseActive.
type scanlineEvent struct {
	Phase Phase
	Row   int
	Frame Seq
}

// timingDriver drives the four-phase vertical state machine and emits a
// per-scanline event on a channel the plane composition loop consumes.
// It never blocks the renderer: ticks are paced by a time.Ticker computed
// from the mode's per-line duration rather than a real pixel clock.
type timingDriver struct {
	mode   Mode
	events chan scanlineEvent
	stop   chan struct{}
	done   chan struct{}

	frame            atomic.Uint32
	lineAtFrameStart atomic.Uint32
	inVblank         atomic.Bool
}

func newTimingDriver(mode Mode) *timingDriver {
	return &timingDriver{
		mode:   mode,
		events: make(chan scanlineEvent, 4),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// run is the core-0-side timing loop: it owns phase transitions and
// posts scanline events for the renderer goroutine to consume. vblank is
// signalled a few scanlines early (during the last active lines) so renderers can
// pre-position, matching the FrameState.in_vblank "set early" contract.
func (t *timingDriver) run() {
	defer close(t.done)
	lineDur := t.mode.LineDuration()
	if lineDur <= 0 {
		lineDur = 1.0 / 60.0 / float64(t.mode.TotalLines())
	}
	ticker := time.NewTicker(time.Duration(lineDur * float64(time.Second)))
	defer ticker.Stop()

	const vblankEarlyLines = 4
	phase := PhaseActive
	lineInPhase := 0
	row := 0
	line := uint32(0) // rolling raster line counter, all phases

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			line++
			switch phase {
			case PhaseActive:
				linesLeft := t.mode.Height<<t.mode.VSS - lineInPhase
				t.inVblank.Store(linesLeft <= vblankEarlyLines)
				t.send(scanlineEvent{Phase: PhaseActive, Row: row, Frame: Seq(t.frame.Load())})
				lineInPhase++
				row++
				if lineInPhase >= t.mode.Height<<t.mode.VSS {
					phase, lineInPhase = PhaseFrontPorch, 0
				}
			case PhaseFrontPorch:
				t.inVblank.Store(true)
				lineInPhase++
				if lineInPhase >= t.mode.VFrontPorch {
					phase, lineInPhase = PhaseVSyncPulse, 0
				}
			case PhaseVSyncPulse:
				lineInPhase++
				if lineInPhase >= t.mode.VSyncPulse {
					phase, lineInPhase = PhaseBackPorch, 0
				}
			case PhaseBackPorch:
				lineInPhase++
				if lineInPhase >= t.mode.VBackPorch {
					phase, lineInPhase = PhaseActive, 0
					row = 0
					t.frame.Add(1)
					t.lineAtFrameStart.Store(line)
					t.inVblank.Store(false)
				}
			}
		}
	}
}

func (t *timingDriver) send(ev scanlineEvent) {
	select {
	case t.events <- ev:
	default:
		// Renderer fell behind; drop the event rather than block the
		// timing loop — a dropped scanline IRQ is exactly the "missed
		// scanline" case the composition loop already accounts for.
	}
}

func (t *timingDriver) Start() { go t.run() }

func (t *timingDriver) Stop() {
	close(t.stop)
	<-t.done
}

// CurrentFrame returns the rolling frame counter, free of any lock.
func (t *timingDriver) CurrentFrame() Seq { return Seq(t.frame.Load()) }

// InVblank reports whether the driver currently considers the raster to
// be in (or approaching) the vertical blanking interval.
func (t *timingDriver) InVblank() bool { return t.inVblank.Load() }
