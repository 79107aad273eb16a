// sprite_single.go - One sprite composited over whatever lies beneath it
//
// Grounded in original_source/Video/AnimatedSprite.h's row-cursor
// protocol: render is a no-op before the sprite's top row, then a
// per-call cursor advance once reached, matching sprite.start(hot_shape)
// / cursor-advance / end-of-shape-no-op exactly.

package video

// SingleSpritePlane renders exactly one sprite over the plane beneath it
// in the composition order.
type SingleSpritePlane struct {
	sprite *Sprite
	format ColorFormat
	depth  int
	started bool
}

// NewSingleSpritePlane wraps one sprite.
func NewSingleSpritePlane(s *Sprite, format ColorFormat) *SingleSpritePlane {
	return &SingleSpritePlane{sprite: s, format: format, depth: format.Depth}
}

// Vblank advances the sprite's animation countdown.
func (p *SingleSpritePlane) Vblank() {
	p.sprite.advanceAnimation()
	p.started = false
}

// Render is a no-op before the sprite's top row; once reached it starts
// (or continues) the row cursor and blends one shape row into buf.
func (p *SingleSpritePlane) Render(row, width int, buf []uint32) {
	top := p.sprite.Y
	if row < top {
		return
	}
	if !p.started {
		p.sprite.start()
		p.started = true
	}
	if p.sprite.cursor.hasEnded() {
		return
	}
	segs, baseX, ok := p.sprite.cursor.next()
	if !ok {
		return
	}
	blendSpriteRow(buf, p.sprite.X+baseX, segs, p.format, p.depth, p.sprite.Ghostly, width)
}

// blendSpriteRow writes each segment's opaque pixels at their absolute x
// position, skipping Skip transparent pixels before each segment and
// blending at 50% for ghostly sprites.
func blendSpriteRow(buf []uint32, x int, segs []segment, format ColorFormat, depth int, ghostly bool, width int) {
	for _, seg := range segs {
		x += seg.Skip
		for _, px := range seg.Pixels {
			if x >= 0 && x < width {
				c := Color(px)
				if ghostly {
					under := Color(getPixelWord(buf, x, depth))
					c = format.Blend(c, under)
				}
				setPixelWord(buf, x, depth, uint32(c))
			}
			x++
		}
	}
}
