package video

import "testing"

// TestFramebufferPlane_SolidIndexed1 is scenario S1: a 640x480 1bpp
// framebuffer filled with index 0 must render a scanline (row 0 is the
// one checked) as 640 pixels of colormap entry 0.
func TestFramebufferPlane_SolidIndexed1(t *testing.T) {
	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	pixmap, err := NewPixmap(640, 480, Indexed1)
	if err != nil {
		t.Fatalf("NewPixmap: %v", err)
	}
	cmap, err := NewColorMap(format, Indexed1)
	if err != nil {
		t.Fatalf("NewColorMap: %v", err)
	}
	black := format.FromRGB8(0, 0, 0)
	white := format.FromRGB8(255, 255, 255)
	cmap.Entries[0] = black
	cmap.Entries[1] = white

	fb, err := NewFramebufferPlane(pixmap, cmap, format)
	if err != nil {
		t.Fatalf("NewFramebufferPlane: %v", err)
	}
	fb.Vblank()

	buf := make([]uint32, 640/PixelsPerDMAWord(format.Depth))
	fb.Render(0, 640, buf)

	for x := 0; x < 640; x++ {
		got := Color(getPixelWord(buf, x, format.Depth))
		if got != black {
			t.Fatalf("pixel %d = %v, want black %v", x, got, black)
		}
	}
}

// TestFramebufferPlane_AttributeMode is scenario S2: a 16x2 a2w8
// framebuffer with one attribute row of two cells resolves each unit
// pixel against its covering cell.
func TestFramebufferPlane_AttributeMode(t *testing.T) {
	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	ap, err := NewAttrPixmap(16, 2, 2, Attr2W8)
	if err != nil {
		t.Fatalf("NewAttrPixmap: %v", err)
	}
	red := format.FromRGB8(255, 0, 0)
	green := format.FromRGB8(0, 255, 0)
	blue := format.FromRGB8(0, 0, 255)
	yellow := format.FromRGB8(255, 255, 0)
	if err := ap.SetCell(0, 0, []Color{red, green, blue, yellow}); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	// pixel bits (2-bit each, low bits first = left-most pixel):
	// pixel0=01(green) pixel1=00(red) pixel2=10(blue) pixel3=11(yellow)
	var b byte
	b |= 0b01 << 0
	b |= 0b00 << 2
	b |= 0b10 << 4
	b |= 0b11 << 6
	ap.PixelRow(0)[0] = b

	fb, err := NewAttrFramebufferPlane(ap, format)
	if err != nil {
		t.Fatalf("NewAttrFramebufferPlane: %v", err)
	}
	fb.Vblank()

	buf := make([]uint32, 16/PixelsPerDMAWord(format.Depth))
	fb.Render(0, 16, buf)

	want := []Color{green, red, blue, yellow}
	for i, w := range want {
		got := Color(getPixelWord(buf, i, format.Depth))
		if got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}
