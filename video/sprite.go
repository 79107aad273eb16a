// sprite.go - Sprite entity: shape, position, z-order and animation

package video

// Sprite holds a shape (or animated shape), screen position, optional
// z-order, ghostly blending flag, and animation timing.
type Sprite struct {
	X, Y int

	Z      int
	HasZ   bool
	Ghostly bool // blend at 50% when composited

	shape    *Shape
	anim     *AnimatedShape
	frameIdx int
	countdown int

	cursor  rowCursor
	started bool
}

// NewStaticSprite wraps a single non-animated shape.
func NewStaticSprite(shape *Shape, x, y int) *Sprite {
	return &Sprite{X: x, Y: y, shape: shape}
}

// NewAnimatedSprite wraps an animated shape, starting at frame 0.
func NewAnimatedSprite(anim *AnimatedShape, x, y int) *Sprite {
	s := &Sprite{X: x, Y: y, anim: anim}
	if len(anim.Durations) > 0 {
		s.countdown = int(anim.Durations[0])
	}
	return s
}

// currentShape returns the shape frame currently active.
func (s *Sprite) currentShape() *Shape {
	if s.anim != nil {
		return s.anim.Frames[s.frameIdx]
	}
	return s.shape
}

// advanceAnimation decrements the animation countdown and advances to
// the next frame when it reaches zero, per the single-sprite-plane
// vblank contract.
func (s *Sprite) advanceAnimation() {
	if s.anim == nil || len(s.anim.Frames) == 0 {
		return
	}
	if s.countdown > 0 {
		s.countdown--
		return
	}
	s.frameIdx = (s.frameIdx + 1) % len(s.anim.Frames)
	s.countdown = int(s.anim.Durations[s.frameIdx])
}

// rowCursor walks a decoded Shape one raster row at a time, tracking the
// running x position each PFX's dx is relative to.
type rowCursor struct {
	shape  *Shape
	row    int
	x      int
	ended  bool
}

// start begins a cursor over shape, positioned before its first row.
func (s *Sprite) start() {
	s.cursor = rowCursor{shape: s.currentShape(), row: -1, x: 0}
}

// hasEnded reports whether the cursor has consumed every row of the
// current shape.
func (c *rowCursor) hasEnded() bool { return c.ended || c.row >= len(c.shape.Rows) }

// next advances to the next shape row and returns its segments plus the
// absolute x each segment starts at.
func (c *rowCursor) next() (segs []segment, baseX int, ok bool) {
	c.row++
	if c.row >= len(c.shape.Rows) {
		c.ended = true
		return nil, 0, false
	}
	row := c.shape.Rows[c.row]
	if len(row.Segments) > 0 {
		c.x += int(row.Segments[0].DX)
	}
	return row.Segments, c.x, true
}
