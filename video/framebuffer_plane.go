// framebuffer_plane.go - Adapts a Pixmap (+ optional ColorMap/attributes) to a Plane

package video

// FramebufferPlane renders a fixed pixmap at one of the 13 color modes.
// It owns a shared Pixmap and, for indexed modes, a ColorMap; attribute
// modes take their colors from the AttrPixmap's cells instead. The
// per-mode inner loop is the corresponding renderer function.
type FramebufferPlane struct {
	mode ColorMode

	pixmap     *Pixmap
	attrPixmap *AttrPixmap
	cmap       *ColorMap
	format     ColorFormat

	// palette is the once-per-frame precomputed index->native-color
	// lookup table, standing in for the hardware interpolator's
	// preconfigured field-extraction + add-base unit.
	palette []uint32

	depth int

	ramResident bool // §4.3 lockout discipline: backdrops/plain framebuffers survive lockout
}

// NewFramebufferPlane builds a plane for a direct or indexed Pixmap.
func NewFramebufferPlane(pixmap *Pixmap, cmap *ColorMap, format ColorFormat) (*FramebufferPlane, error) {
	if pixmap.Mode.IsAttribute() {
		return nil, &EngineError{Operation: "framebuffer plane construction", Details: "use NewAttrFramebufferPlane for attribute modes", Err: ErrBadGeometry}
	}
	if pixmap.Mode.IsIndexed() && cmap == nil {
		return nil, &EngineError{Operation: "framebuffer plane construction", Details: "indexed color mode requires a ColorMap", Err: ErrBadGeometry}
	}
	depth := format.Depth
	return &FramebufferPlane{
		mode: pixmap.Mode, pixmap: pixmap, cmap: cmap, format: format,
		depth: depth, ramResident: true,
	}, nil
}

// NewAttrFramebufferPlane builds a plane for an attribute-mode pixmap.
func NewAttrFramebufferPlane(ap *AttrPixmap, format ColorFormat) (*FramebufferPlane, error) {
	if !ap.Mode.IsAttribute() {
		return nil, &EngineError{Operation: "attr framebuffer plane construction", Details: "pixmap is not an attribute mode", Err: ErrBadGeometry}
	}
	return &FramebufferPlane{
		mode: ap.Mode, attrPixmap: ap, format: format, depth: format.Depth, ramResident: true,
	}, nil
}

// AlwaysRenderable reports true: plain and attribute framebuffers are
// the RAM-resident variants that keep rendering during a lockout window.
func (p *FramebufferPlane) AlwaysRenderable() bool { return p.ramResident }

// Vblank rebuilds the once-per-frame palette cache for indexed modes.
// The plane keeps no row or attribute cursor between calls, so there is
// nothing else to reset.
func (p *FramebufferPlane) Vblank() {
	if p.cmap != nil {
		p.palette = make([]uint32, len(p.cmap.Entries))
		for i, c := range p.cmap.Entries {
			p.palette[i] = uint32(c)
		}
	}
}

// Render selects the pixmap row by row number in every mode, clamping
// rows past the bottom to the last row; for attribute modes it resolves
// the attribute row straight from row/AttrHeight since AttrPixmap
// already exposes that mapping.
func (p *FramebufferPlane) Render(row, width int, buf []uint32) {
	switch {
	case p.attrPixmap != nil:
		y := row
		if y >= p.attrPixmap.Height {
			y = p.attrPixmap.Height - 1
		}
		renderAttribute(buf, width, p.mode.BitsPerPixel(), p.mode.AttrWidth(), p.attrPixmap.PixelRow(y), p.attrPixmap, y/p.attrPixmap.AttrHeight, p.depth)
	case p.mode.IsIndexed():
		y := row
		if y >= p.pixmap.Height {
			y = p.pixmap.Height - 1
		}
		renderIndexed(buf, width, p.mode.BitsPerPixel(), p.pixmap.Row(y), p.cmap, p.palette)
	default:
		y := row
		if y >= p.pixmap.Height {
			y = p.pixmap.Height - 1
		}
		renderDirect(buf, width, p.pixmap.Row(y), p.depth)
	}
}
