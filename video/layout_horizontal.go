// layout_horizontal.go - Side-by-side composition of 2-4 child planes
//
// Grounded in video_compositor.go's blendFrame strip-splitting geometry,
// generalized from "blend whole frames at fixed x offsets" to "recurse
// into a child plane at a column offset", and in
// original_source/Video/HorizontalLayout.h's Plane{child, width} array.

package video

// horizontalChild pairs a plane with the column width it occupies.
// Widths are rounded down to a whole DMA word so each child's render
// starts on an aligned buffer offset, per the layout contract.
type horizontalChild struct {
	plane *PlaneRef
	width int
}

// HorizontalLayout composites 2-4 children left to right.
type HorizontalLayout struct {
	children []horizontalChild
	depth    int
}

// HorizontalEntry pairs a child plane with its nominal column width.
type HorizontalEntry struct {
	Plane Plane
	Width int
}

// NewHorizontalLayout builds a layout from 2-4 (plane, width) pairs.
// Each width is rounded down to the nearest whole DMA word at depth.
func NewHorizontalLayout(depth int, entries ...HorizontalEntry) (*HorizontalLayout, error) {
	if len(entries) < 2 || len(entries) > 4 {
		return nil, &EngineError{Operation: "horizontal layout construction", Details: "requires 2-4 children", Err: ErrBadGeometry}
	}
	ppw := PixelsPerDMAWord(depth)
	hl := &HorizontalLayout{depth: depth}
	for _, e := range entries {
		w := (e.Width / ppw) * ppw
		hl.children = append(hl.children, horizontalChild{plane: NewPlaneRef(e.Plane, nil), width: w})
	}
	return hl, nil
}

// Vblank dispatches to every child.
func (h *HorizontalLayout) Vblank() {
	for _, c := range h.children {
		c.plane.Plane().Vblank()
	}
}

// Render iterates children left to right, handing each a sub-width
// slice of buf and stopping once remaining_width is exhausted.
func (h *HorizontalLayout) Render(row, width int, buf []uint32) {
	ppw := PixelsPerDMAWord(h.depth)
	remaining := width
	offsetWords := 0
	for _, c := range h.children {
		if remaining <= 0 {
			break
		}
		w := c.width
		if w > remaining {
			w = remaining
		}
		wordsForChild := w / ppw
		if wordsForChild > 0 {
			c.plane.Plane().Render(row, w, buf[offsetWords:offsetWords+wordsForChild])
		}
		offsetWords += wordsForChild
		remaining -= w
	}
}
