// seq.go - Circular counters for raster-line and clock-cycle bookkeeping

package video

// Seq is a free-running uint32 counter compared with signed-difference
// arithmetic so wraparound never produces a false ordering. Used for
// frame numbers and for the scanline comparison in WaitForScanline.
type Seq uint32

// Before reports whether s occurred strictly before other, tolerant of
// wraparound (valid as long as the true distance is < 2^31).
func (s Seq) Before(other Seq) bool {
	return int32(s-other) < 0
}

// After reports whether s occurred strictly after other.
func (s Seq) After(other Seq) bool {
	return int32(s-other) > 0
}
