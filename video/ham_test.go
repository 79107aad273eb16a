package video

import "testing"

// TestHAMPlane_CarryPropagation is scenario S4: codes [5, 253, 253, 5]
// with index 5 an absolute red and 253 a relative (+1,+1,+1) offset
// (num_abs=128, first_rel=128) must produce red, red+1, red+2, then
// reset to absolute red on the final (also-absolute) pixel.
func TestHAMPlane_CarryPropagation(t *testing.T) {
	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	cmap, err := NewHAMColorMap(format, 128, 128)
	if err != nil {
		t.Fatalf("NewHAMColorMap: %v", err)
	}
	red := format.FromRGB8(255, 0, 0)
	cmap.Abs[5] = red
	cmap.RelDelta[253] = ColorDelta{DR: 1, DG: 1, DB: 1}

	pixmap, err := NewPixmap(4, 1, Indexed8)
	if err != nil {
		t.Fatalf("NewPixmap: %v", err)
	}
	copy(pixmap.Row(0), []byte{5, 253, 253, 5})

	plane, err := NewHAMPlane(pixmap, cmap)
	if err != nil {
		t.Fatalf("NewHAMPlane: %v", err)
	}
	plane.Vblank()

	buf := make([]uint32, 4/PixelsPerDMAWord(format.Depth))
	plane.Render(0, 4, buf)

	rr, rg, rb := format.Unpack(red)
	want := []Color{
		red,
		format.Pack(clamp(rr+1, format.RBits), clamp(rg+1, format.GBits), clamp(rb+1, format.BBits)),
		format.Pack(clamp(rr+2, format.RBits), clamp(rg+2, format.GBits), clamp(rb+2, format.BBits)),
		red,
	}
	for i, w := range want {
		got := Color(getPixelWord(buf, i, format.Depth))
		if got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

// TestHAMPlane_NextRowPrimedFromOwnFirstPixel verifies the carry into a
// second row is primed from the first row's own first pixel, not the
// mid-row accumulator.
func TestHAMPlane_NextRowPrimedFromOwnFirstPixel(t *testing.T) {
	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	cmap, err := NewHAMColorMap(format, 128, 128)
	if err != nil {
		t.Fatalf("NewHAMColorMap: %v", err)
	}
	red := format.FromRGB8(255, 0, 0)
	cmap.Abs[5] = red
	cmap.RelDelta[253] = ColorDelta{DR: 1, DG: 1, DB: 1}

	pixmap, err := NewPixmap(4, 2, Indexed8)
	if err != nil {
		t.Fatalf("NewPixmap: %v", err)
	}
	copy(pixmap.Row(0), []byte{5, 253, 253, 253})
	copy(pixmap.Row(1), []byte{253, 253, 253, 253})

	plane, err := NewHAMPlane(pixmap, cmap)
	if err != nil {
		t.Fatalf("NewHAMPlane: %v", err)
	}
	plane.Vblank()

	buf := make([]uint32, 4/PixelsPerDMAWord(format.Depth))
	plane.Render(0, 4, buf)
	plane.Render(1, 4, buf)

	// Row 1 pixel 0 carries from row 0's first pixel (red), plus its own
	// relative delta.
	got := Color(getPixelWord(buf, 0, format.Depth))
	rr, rg, rb := format.Unpack(red)
	want := format.Pack(clamp(rr+1, format.RBits), clamp(rg+1, format.GBits), clamp(rb+1, format.BBits))
	if got != want {
		t.Errorf("row 1 pixel 0 = %v, want %v", got, want)
	}
}

func clamp(v uint16, bits uint) uint16 {
	max := uint16(1)<<bits - 1
	if v > max {
		return max
	}
	return v
}
