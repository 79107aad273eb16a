// ebiten_backend.go - Presentation backend built on ebiten
//
// Adapted from video_backend_ebiten.go's EbitenOutput: the window
// lifecycle, RGBA framebuffer, and Draw/Layout/Update loop are kept
// verbatim in spirit, but UpdateFrame's whole-buffer copy becomes
// Present's per-scanline word unpack, since the engine now produces one
// row at a time instead of one RGBA blob. Keyboard/clipboard handling
// has no plane in the new domain (no USB/HID input module exists) and
// is not carried forward.

package ebitenbackend

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/scanvideo/engine/video"
)

// Output presents completed scanlines in an ebiten window. Present
// unpacks each row's packed uint32 words into the RGBA frame buffer at
// the configured color depth; Draw blits the accumulated frame once per
// ebiten tick.
type Output struct {
	running     bool
	window      *ebiten.Image
	width       int
	height      int
	depth       int
	format      video.ColorFormat

	frameBuffer []byte
	bufferMutex sync.RWMutex
	frameCount  uint64
	refreshRate int
	vsyncChan   chan struct{}
}

// New builds an unstarted ebiten presentation backend for the given
// scanline width/height and color format.
func New(width, height int, format video.ColorFormat) *Output {
	return &Output{
		width: width, height: height, depth: format.Depth, format: format,
		frameBuffer: make([]byte, width*height*4),
		refreshRate: 60,
		vsyncChan:   make(chan struct{}, 1),
	}
}

func (eo *Output) Start() error {
	if eo.running {
		return nil
	}
	eo.running = true
	ebiten.SetWindowSize(eo.width, eo.height)
	ebiten.SetWindowTitle("scanvideo demo")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)

	go func() {
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("ebiten error: %v\n", err)
		}
	}()

	<-eo.vsyncChan
	return nil
}

func (eo *Output) Stop() error {
	eo.running = false
	return nil
}

func (eo *Output) IsStarted() bool { return eo.running }

// Present unpacks one scanline's packed words into the RGBA frame
// buffer at row. Palette resolution already happened in the renderer;
// these are native-depth Color values, here widened to RGBA8 for the
// ebiten image.
func (eo *Output) Present(row int, buf []uint32) {
	if row < 0 || row >= eo.height {
		return
	}
	pixelsPerWord := video.PixelsPerDMAWord(eo.depth)
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()
	rowOff := row * eo.width * 4
	x := 0
	for _, w := range buf {
		for i := 0; i < pixelsPerWord && x < eo.width; i++ {
			raw := (w >> (uint(i) * uint(eo.depth))) & (1<<uint(eo.depth) - 1)
			r, g, b := eo.format.Unpack(video.Color(raw))
			o := rowOff + x*4
			eo.frameBuffer[o] = scaleTo8(r, eo.format.RBits)
			eo.frameBuffer[o+1] = scaleTo8(g, eo.format.GBits)
			eo.frameBuffer[o+2] = scaleTo8(b, eo.format.BBits)
			eo.frameBuffer[o+3] = 0xFF
			x++
		}
	}
}

func scaleTo8(v uint16, bits uint) byte {
	if bits == 0 {
		return 0
	}
	maxIn := uint32(1)<<bits - 1
	return byte((uint32(v)*255 + maxIn/2) / maxIn)
}

// FrameComplete flips the accumulated frame buffer to the ebiten image
// on the next Draw call and signals WaitForVSync.
func (eo *Output) FrameComplete() {
	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *Output) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *Output) FrameCount() uint64 { return eo.frameCount }

func (eo *Output) RefreshRate() int { return eo.refreshRate }

func (eo *Output) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !eo.running {
		return ebiten.Termination
	}
	return nil
}

func (eo *Output) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}
	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)

	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *Output) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

