// ham.go - Hold-And-Modify plane
//
// Grounded directly in original_source/Video/HoldAndModifyVideoPlane.cpp:
// Vblank clears the carried color (Render picks the pixmap row by row
// number, so there is no row pointer to reset); Render threads a running
// accumulator across the row, and the *next* row is
// primed from the row just rendered's own first pixel — not the
// catch-up value the renderer used mid-row — matching the original's
// "first_color = first pixel's final color" priming rule exactly.

package video

// HAMPlane wraps an 8-bit-indexed pixmap, a 256-entry split colormap,
// and the carried first_color state between scanlines.
type HAMPlane struct {
	pixmap *Pixmap
	cmap   *HAMColorMap

	firstColor Color
}

// NewHAMPlane builds a HAM plane over an Indexed8 pixmap.
func NewHAMPlane(pixmap *Pixmap, cmap *HAMColorMap) (*HAMPlane, error) {
	if pixmap.Mode != Indexed8 {
		return nil, &EngineError{Operation: "HAM plane construction", Details: "HAM requires an 8-bit-indexed pixmap", Err: ErrBadGeometry}
	}
	return &HAMPlane{pixmap: pixmap, cmap: cmap}, nil
}

// Vblank clears the carried color, matching HamImageScanlineRenderer::vblank().
func (h *HAMPlane) Vblank() {
	h.firstColor = 0
}

// Render resolves one row of HAM codes and primes firstColor from this
// row's own first rendered pixel for the next row's carry — the subtle
// rule the carry-propagation testable property exercises.
func (h *HAMPlane) Render(row, width int, buf []uint32) {
	y := row
	if y >= h.pixmap.Height {
		y = h.pixmap.Height - 1
	}
	codes := h.pixmap.Row(y)[:width]
	firstPixelColor := h.cmap.Apply(int(codes[0]), h.firstColor)
	renderHAMRow(buf, width, codes, h.cmap, h.firstColor, h.cmap.Format.Depth)
	h.firstColor = firstPixelColor
}
