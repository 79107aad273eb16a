package video

import "testing"

// TestColorMap_BoundsChecked is testable property 3: an out-of-range
// palette index is an error, never a silent wraparound or panic.
func TestColorMap_BoundsChecked(t *testing.T) {
	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	cmap, err := NewColorMap(format, Indexed2)
	if err != nil {
		t.Fatalf("NewColorMap: %v", err)
	}
	if len(cmap.Entries) != 4 {
		t.Fatalf("Indexed2 colormap should have 4 entries, got %d", len(cmap.Entries))
	}

	if _, err := cmap.At(0); err != nil {
		t.Fatalf("At(0) should succeed: %v", err)
	}
	if _, err := cmap.At(3); err != nil {
		t.Fatalf("At(3) should succeed: %v", err)
	}
	if _, err := cmap.At(4); err == nil {
		t.Fatalf("At(4) should fail: only indices [0,4) are valid")
	}
	if _, err := cmap.At(-1); err == nil {
		t.Fatalf("At(-1) should fail")
	}
}
