// ring_buffer.go - Fixed-count pool of pixel-row slots shared with the backend sink
//
// Grounded in the triple-buffer atomic-swap idiom used by VGAEngine/ULAEngine
// in the teacher pack (GetFrame's writeIdx/sharedIdx/readingIdx dance),
// generalized from a fixed 3 slots to a power-of-two count with vss-based
// slot sharing lifted from ScanlineBuffer's operator[].

package video

import "sync/atomic"

// RingBuffer is a pool of same-sized scanline slots, indexed by a rolling
// counter. Slot i maps to physical slot (i >> vss) & mask, so 2^vss
// consecutive logical rows share one physical buffer — the low-res reuse
// described by VSS.
type RingBuffer struct {
	count     int // power of two in {2,4,8,16}
	mask      uint32
	vss       uint
	words     int // uint32 words per slot
	slots     [][]uint32

	// inUse[i] is set while the backend sink still owns slot i (i.e. it
	// has not yet been released back to the renderer). writeIndex is the
	// rolling logical index the renderer is about to fill next.
	inUse      []atomic.Bool
	writeIndex atomic.Uint32
	readIndex  atomic.Uint32
}

// NewRingBuffer allocates count slots sized for one scanline of mode at
// the mode's resolved depth. Fails with ErrOutOfMemory only in the sense
// that the original contract reserves that error for allocation failure;
// in Go that degrades to a panic-free zero value since make() does not
// fail, so this validates arguments instead.
func NewRingBuffer(mode Mode, count int) (*RingBuffer, error) {
	switch count {
	case 2, 4, 8, 16:
	default:
		return nil, &EngineError{Operation: "ring buffer setup", Details: "slot count must be a power of two in {2,4,8,16}", Err: ErrOutOfMemory}
	}
	// Slots are sized at the output color depth, not the pixel-grid
	// selector depth: every renderer unpacks into Format.Depth-wide words
	// regardless of how the source pixmap itself is packed.
	ppw := PixelsPerDMAWord(mode.Format.Depth)
	if mode.Width%ppw != 0 {
		return nil, &EngineError{Operation: "ring buffer setup", Details: "scanline width is not a whole number of DMA words", Err: ErrOutOfMemory}
	}
	words := mode.Width / ppw
	rb := &RingBuffer{
		count: count,
		mask:  uint32(count - 1),
		vss:   mode.VSS,
		words: words,
		slots: make([][]uint32, count),
		inUse: make([]atomic.Bool, count),
	}
	for i := range rb.slots {
		rb.slots[i] = make([]uint32, words)
	}
	return rb, nil
}

// Teardown releases slot storage. Safe to call once; a no-op afterward.
func (rb *RingBuffer) Teardown() {
	rb.slots = nil
}

// physicalSlot maps a rolling logical index to its physical slot number.
func (rb *RingBuffer) physicalSlot(logical uint32) uint32 {
	return (logical >> rb.vss) & rb.mask
}

// Slot returns the word slice for logical index i, constant time via bit
// masking, matching scanlines[(rolling_index & mask) << vss] except
// reshaped for Go slice indexing (no separate <<vss multiply needed since
// the physical array already has `count` entries shared across 2^vss
// logical rows).
func (rb *RingBuffer) Slot(i uint32) []uint32 {
	return rb.slots[rb.physicalSlot(i)]
}

// BeginWrite claims the next slot for the renderer. It reports false if
// the slot is still marked in-use by the backend sink (the ring has
// caught up to the DMA read position) — callers must count this as a
// missed scanline rather than overwrite live data.
func (rb *RingBuffer) BeginWrite() (logical uint32, slot []uint32, ok bool) {
	logical = rb.writeIndex.Load()
	phys := rb.physicalSlot(logical)
	if rb.inUse[phys].Load() {
		return logical, nil, false
	}
	return logical, rb.slots[phys], true
}

// FinishWrite marks the claimed slot ready for the backend sink and
// advances the rolling write index.
func (rb *RingBuffer) FinishWrite(logical uint32) {
	phys := rb.physicalSlot(logical)
	rb.inUse[phys].Store(true)
	rb.writeIndex.Store(logical + 1)
}

// BeginRead claims the oldest ready slot for the backend sink.
func (rb *RingBuffer) BeginRead() (logical uint32, slot []uint32, ok bool) {
	logical = rb.readIndex.Load()
	phys := rb.physicalSlot(logical)
	if !rb.inUse[phys].Load() {
		return logical, nil, false
	}
	return logical, rb.slots[phys], true
}

// FinishRead releases the slot back to the renderer and advances the
// rolling read index — this is the "DMA consumed the slot" event.
func (rb *RingBuffer) FinishRead(logical uint32) {
	phys := rb.physicalSlot(logical)
	rb.inUse[phys].Store(false)
	rb.readIndex.Store(logical + 1)
}

// Count returns the configured slot count.
func (rb *RingBuffer) Count() int { return rb.count }

// WordsPerSlot returns the DMA-word width of each slot.
func (rb *RingBuffer) WordsPerSlot() int { return rb.words }
