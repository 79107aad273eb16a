package video

import "testing"

func TestColorFormat_PackUnpackRoundTrip(t *testing.T) {
	f := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	c := f.Pack(5, 6, 2)
	r, g, b := f.Unpack(c)
	if r != 5 || g != 6 || b != 2 {
		t.Fatalf("round trip mismatch: got (%d,%d,%d)", r, g, b)
	}
}

func TestColorFormat_BGROrderDiffersFromRGB(t *testing.T) {
	rgb := ColorFormat{Depth: 16, Order: OrderRGB, RBits: 5, GBits: 6, BBits: 5}
	bgr := ColorFormat{Depth: 16, Order: OrderBGR, RBits: 5, GBits: 6, BBits: 5}
	cr := rgb.Pack(10, 20, 30)
	cb := bgr.Pack(10, 20, 30)
	if cr == cb {
		t.Fatalf("expected RGB and BGR packing of the same components to differ")
	}
	r, g, b := bgr.Unpack(cb)
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("BGR round trip mismatch: got (%d,%d,%d)", r, g, b)
	}
}

func TestColorFormat_BlendRoundsAwayFromZero(t *testing.T) {
	f := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 8, GBits: 0, BBits: 0}
	a := f.Pack(1, 0, 0)
	b := f.Pack(2, 0, 0)
	blended := f.Blend(a, b)
	r, _, _ := f.Unpack(blended)
	if r != 2 { // (1+2+1)/2 = 2, rounds up
		t.Fatalf("expected rounded blend of 1 and 2 to be 2, got %d", r)
	}
}

func TestColorFormat_FromRGB8Scales(t *testing.T) {
	f := ColorFormat{Depth: 8, Order: OrderRGB, RBits: 3, GBits: 3, BBits: 2}
	c := f.FromRGB8(255, 255, 255)
	r, g, b := f.Unpack(c)
	if r != 7 || g != 7 || b != 3 {
		t.Fatalf("expected full-scale white to saturate each channel, got (%d,%d,%d)", r, g, b)
	}
}

func TestColorMode_BitsPerPixelAndAttributeShape(t *testing.T) {
	cases := []struct {
		mode       ColorMode
		bpp        int
		attribute  bool
		attrWidth  int
		attrColors int
	}{
		{Indexed1, 1, false, 0, 0},
		{Indexed8, 8, false, 0, 0},
		{Direct16, 16, false, 0, 0},
		{Attr1W8, 1, true, 8, 2},
		{Attr2W4, 2, true, 4, 4},
	}
	for _, c := range cases {
		if got := c.mode.BitsPerPixel(); got != c.bpp {
			t.Errorf("%v: BitsPerPixel() = %d, want %d", c.mode, got, c.bpp)
		}
		if got := c.mode.IsAttribute(); got != c.attribute {
			t.Errorf("%v: IsAttribute() = %v, want %v", c.mode, got, c.attribute)
		}
		if c.attribute {
			if got := c.mode.AttrWidth(); got != c.attrWidth {
				t.Errorf("%v: AttrWidth() = %d, want %d", c.mode, got, c.attrWidth)
			}
			if got := c.mode.AttrColors(); got != c.attrColors {
				t.Errorf("%v: AttrColors() = %d, want %d", c.mode, got, c.attrColors)
			}
		}
	}
}
