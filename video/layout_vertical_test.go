package video

import "testing"

// TestVerticalLayout_Additivity is the vertical analogue of scenario S3: a
// 240-row-tall layout split 100/140 between two row-tagging planes must
// dispatch each row to the child whose band contains it, each child seeing
// rows relative to its own top.
func TestVerticalLayout_Additivity(t *testing.T) {
	depth := 16
	top := &rowTaggingPlane{}
	bottom := &rowTaggingPlane{}

	vl, err := NewVerticalLayout(
		VerticalEntry{Plane: top, Height: 100},
		VerticalEntry{Plane: bottom, Height: 140},
	)
	if err != nil {
		t.Fatalf("NewVerticalLayout: %v", err)
	}
	vl.Vblank()

	ppw := PixelsPerDMAWord(depth)
	buf := make([]uint32, 320/ppw)

	vl.Render(0, 320, buf)
	if top.lastRow != 0 {
		t.Fatalf("row 0: top child saw row %d, want 0", top.lastRow)
	}

	vl.Render(99, 320, buf)
	if top.lastRow != 99 {
		t.Fatalf("row 99: top child saw row %d, want 99", top.lastRow)
	}

	vl.Render(100, 320, buf)
	if bottom.lastRow != 0 {
		t.Fatalf("row 100: bottom child saw row %d, want 0 (relative to its own top)", bottom.lastRow)
	}

	vl.Render(239, 320, buf)
	if bottom.lastRow != 139 {
		t.Fatalf("row 239: bottom child saw row %d, want 139", bottom.lastRow)
	}
}

type rowTaggingPlane struct {
	lastRow int
}

func (p *rowTaggingPlane) Vblank() { p.lastRow = -1 }
func (p *rowTaggingPlane) Render(row, width int, buf []uint32) {
	p.lastRow = row
}
