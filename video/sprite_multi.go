// sprite_multi.go - Display list + per-scanline hot list with z-ordering
//
// Grounded in original_source/Video/MultiSpritesPlane.cpp/.h's
// sorted-display-list + hot-list protocol, expressed with a slice and a
// sync.Mutex standing in for the spinlock both cores acquire for list
// mutation (matching the teacher's own spinlock-around-list-mutation
// pattern for dirtyRegions in video_chip.go).

package video

import "sync"

const defaultHotlistCapacity = 20

// MultiSpritePlane holds a y-sorted display list and renders the subset
// overlapping the current scanline each row, composited in z-order when
// HasZ sprites are present.
type MultiSpritePlane struct {
	mu           sync.Mutex // the sprite-list spinlock stand-in; held only across list mutation
	displayList  []*Sprite  // sorted by top Y
	hotlist      []*Sprite  // core-1-exclusive; rebuilt every frame
	hotlistCap   int
	overflow     bool
	format       ColorFormat
	depth        int
	useZ         bool
	nextHotIdx   int // index into displayList of the next sprite not yet drained
}

// NewMultiSpritePlane builds an empty multi-sprite plane. useZ enables
// z-ordered compositing within the hot list.
func NewMultiSpritePlane(format ColorFormat, useZ bool) *MultiSpritePlane {
	return &MultiSpritePlane{format: format, depth: format.Depth, hotlistCap: defaultHotlistCapacity, useZ: useZ}
}

// Add inserts a sprite into the display list sorted by top Y.
func (p *MultiSpritePlane) Add(s *Sprite) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := 0
	for i < len(p.displayList) && p.displayList[i].Y <= s.Y {
		i++
	}
	p.displayList = append(p.displayList, nil)
	copy(p.displayList[i+1:], p.displayList[i:])
	p.displayList[i] = s
}

// Remove unlinks a sprite from the display list. A retained reference
// may linger in the hot list for the current scanline but is overwritten
// on the next vblank rebuild.
func (p *MultiSpritePlane) Remove(s *Sprite) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, d := range p.displayList {
		if d == s {
			p.displayList = append(p.displayList[:i], p.displayList[i+1:]...)
			return
		}
	}
}

// MoveTo updates a sprite's position, re-sorting the display list if Y
// changed.
func (p *MultiSpritePlane) MoveTo(s *Sprite, x, y int) {
	p.mu.Lock()
	yChanged := s.Y != y
	s.X, s.Y = x, y
	p.mu.Unlock()
	if yChanged {
		p.Remove(s)
		p.Add(s)
	}
}

// Replace swaps a sprite's shape and drops any animation. The display
// list is not re-sorted: it is ordered by Y alone, and Replace leaves Y
// unchanged.
func (p *MultiSpritePlane) Replace(s *Sprite, newShape *Shape) {
	p.mu.Lock()
	s.shape = newShape
	s.anim = nil
	p.mu.Unlock()
}

// HotlistOverflow reports whether the most recent frame dropped sprites
// because more wanted to join the hot list than capacity allowed.
func (p *MultiSpritePlane) HotlistOverflow() bool { return p.overflow }

// Vblank rebuilds bookkeeping for a fresh frame: clears the hot list and
// resets the display-list drain cursor, then advances every sprite's
// animation.
func (p *MultiSpritePlane) Vblank() {
	p.mu.Lock()
	sprites := append([]*Sprite(nil), p.displayList...)
	p.mu.Unlock()
	for _, s := range sprites {
		s.advanceAnimation()
		s.started = false
	}
	p.hotlist = p.hotlist[:0]
	p.nextHotIdx = 0
	p.overflow = false
}

// Render implements the per-scanline hot-list protocol: drain newly
// overlapping sprites from the display list into the hot list (sorted by
// z if enabled), render one row from each hot sprite, then drop any that
// signalled end-of-shape.
func (p *MultiSpritePlane) Render(row, width int, buf []uint32) {
	p.mu.Lock()
	for p.nextHotIdx < len(p.displayList) && p.displayList[p.nextHotIdx].Y <= row {
		s := p.displayList[p.nextHotIdx]
		p.nextHotIdx++
		if len(p.hotlist) >= p.hotlistCap {
			p.overflow = true
			continue
		}
		p.insertHot(s)
	}
	hot := p.hotlist
	p.mu.Unlock()

	survivors := hot[:0]
	for _, s := range hot {
		if !s.started {
			s.start()
			s.started = true
		}
		if s.cursor.hasEnded() {
			continue
		}
		segs, baseX, ok := s.cursor.next()
		if ok {
			blendSpriteRow(buf, s.X+baseX, segs, p.format, p.depth, s.Ghostly, width)
		}
		if !s.cursor.hasEnded() {
			survivors = append(survivors, s)
		}
	}
	p.hotlist = survivors
}

// insertHot inserts s into the hot list sorted by ascending Z when
// z-ordering is enabled (higher z composited later, i.e. on top), or
// appends otherwise.
func (p *MultiSpritePlane) insertHot(s *Sprite) {
	if !p.useZ || !s.HasZ {
		p.hotlist = append(p.hotlist, s)
		return
	}
	i := 0
	for i < len(p.hotlist) && p.hotlist[i].Z <= s.Z {
		i++
	}
	p.hotlist = append(p.hotlist, nil)
	copy(p.hotlist[i+1:], p.hotlist[i:])
	p.hotlist[i] = s
}
