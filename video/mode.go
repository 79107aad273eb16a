// mode.go - Immutable display format descriptor

package video

import "fmt"

// Mode is the immutable VGA-style timing and geometry descriptor for one
// display format. It is constructed once by the embedding application and
// never mutated afterward — exactly the teacher's DisplayConfig role,
// widened with the timing fields a software raster needs.
type Mode struct {
	Name string

	PixelClockHz int

	Width  int // logical pixels per active line
	Height int // logical active lines

	HFrontPorch int // pixel clocks
	HSyncPulse  int
	HBackPorch  int

	VFrontPorch int // lines
	VSyncPulse  int
	VBackPorch  int

	HSyncPositive bool
	VSyncPositive bool

	// VSS is log2 of how many raster lines share one logical pixel row
	// (vertical scale shift). A vss of 1 means every logical row is
	// rendered twice.
	VSS uint

	Format ColorFormat
	Mode   ColorMode
}

// TotalLines is the full vertical period including blanking.
func (m Mode) TotalLines() int {
	return m.Height<<m.VSS + m.VFrontPorch + m.VSyncPulse + m.VBackPorch
}

// TotalPixelsPerLine is the full horizontal period including blanking.
func (m Mode) TotalPixelsPerLine() int {
	return m.Width + m.HFrontPorch + m.HSyncPulse + m.HBackPorch
}

// LineDuration is the wall-clock time one raster line occupies.
func (m Mode) LineDuration() float64 {
	if m.PixelClockHz == 0 {
		return 0
	}
	return float64(m.TotalPixelsPerLine()) / float64(m.PixelClockHz)
}

// Validate checks the geometry invariant every Mode must satisfy: width
// must divide evenly into whole DMA words at the *output* color depth —
// the scanline buffer a renderer writes into is always packed at
// Format.Depth, regardless of how densely the pixel grid itself is
// selector-packed (Mode.BitsPerPixel()).
func (m Mode) Validate() error {
	ppw := PixelsPerDMAWord(m.Format.Depth)
	if m.Width%ppw != 0 {
		return &EngineError{
			Operation: "mode validation",
			Details:   fmt.Sprintf("width %d is not a multiple of %d pixels-per-dma-word", m.Width, ppw),
		}
	}
	if m.Width <= 0 || m.Height <= 0 {
		return &EngineError{Operation: "mode validation", Details: "width and height must be positive"}
	}
	switch 1 << m.VSS {
	case 1, 2, 4, 8, 16:
	default:
		return &EngineError{Operation: "mode validation", Details: fmt.Sprintf("vss %d out of supported range", m.VSS)}
	}
	return nil
}

// VGA640x480x60 is the stock 640x480@60Hz indexed-1bpp mode used by the
// default demo and by S1 of the testable-properties scenarios.
var VGA640x480x60 = Mode{
	Name:          "640x480@60",
	PixelClockHz:  25175000,
	Width:         640,
	Height:        480,
	HFrontPorch:   16,
	HSyncPulse:    96,
	HBackPorch:    48,
	VFrontPorch:   10,
	VSyncPulse:    2,
	VBackPorch:    33,
	HSyncPositive: false,
	VSyncPositive: false,
	VSS:           0,
	Format:        ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2},
	Mode:          Indexed1,
}
