// passepartout.go - Fixed border padding around one inner plane
//
// Grounded in original_source/Video/Passepartout.cpp's border-fill +
// adjusted-row delegation, expressed here with the ring buffer's
// uint32-word addressing instead of raw pixel pointers.

package video

// Passepartout centers an inner plane of innerWidth x innerHeight within
// an outerWidth x outerHeight frame, filling the border with a clear
// color.
type Passepartout struct {
	inner                    *PlaneRef
	outerWidth, outerHeight  int
	innerWidth, innerHeight  int
	top, left                int
	clear                    uint32
	depth                    int
}

// NewPassepartout computes a centered border; clear is the pre-packed
// border fill word for the mode's color depth.
func NewPassepartout(inner Plane, outerWidth, outerHeight, innerWidth, innerHeight, depth int, clear uint32) (*Passepartout, error) {
	if innerWidth > outerWidth || innerHeight > outerHeight {
		return nil, &EngineError{Operation: "passepartout construction", Details: "inner dimensions exceed outer", Err: ErrBadGeometry}
	}
	return &Passepartout{
		inner: NewPlaneRef(inner, nil),
		outerWidth: outerWidth, outerHeight: outerHeight,
		innerWidth: innerWidth, innerHeight: innerHeight,
		top:  (outerHeight - innerHeight) / 2,
		left: (outerWidth - innerWidth) / 2,
		clear: clear, depth: depth,
	}, nil
}

// Vblank dispatches to the inner plane.
func (p *Passepartout) Vblank() { p.inner.Plane().Vblank() }

// Render fills the border with the clear word; inside the window it
// delegates to the inner plane with row and buffer offset adjusted.
func (p *Passepartout) Render(row, width int, buf []uint32) {
	ppw := PixelsPerDMAWord(p.depth)
	leftWords := p.left / ppw
	innerWords := p.innerWidth / ppw

	if row < p.top || row >= p.top+p.innerHeight {
		fillWords(buf, p.clear)
		return
	}
	for i := 0; i < leftWords; i++ {
		buf[i] = p.clear
	}
	p.inner.Plane().Render(row-p.top, p.innerWidth, buf[leftWords:leftWords+innerWords])
	for i := leftWords + innerWords; i < len(buf); i++ {
		buf[i] = p.clear
	}
}

func fillWords(buf []uint32, v uint32) {
	for i := range buf {
		buf[i] = v
	}
}
