// pixmap.go - 2D pixel grids backing framebuffer and HAM planes

package video

import "fmt"

// Pixmap is the plain pixel grid used by direct and indexed framebuffer
// planes: a byte array with width*bytesPerPixel (or bits-per-pixel,
// packed) active bytes per row and a possibly-wider row stride to allow
// alignment padding, matching the pixels[height][row_offset] layout.
type Pixmap struct {
	Width, Height int
	Mode          ColorMode
	RowStride     int // bytes per row, >= packed row size
	Pixels        []byte
}

// NewPixmap allocates a zero-filled Pixmap for the given dimensions and
// color mode, with the row stride rounded up to the smallest whole byte.
func NewPixmap(width, height int, mode ColorMode) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, &EngineError{Operation: "pixmap construction", Details: "non-positive dimensions", Err: ErrBadGeometry}
	}
	bpp := mode.BitsPerPixel()
	rowBytes := (width*bpp + 7) / 8
	return &Pixmap{
		Width: width, Height: height, Mode: mode,
		RowStride: rowBytes,
		Pixels:    make([]byte, rowBytes*height),
	}, nil
}

// Row returns the packed byte slice for one row.
func (p *Pixmap) Row(y int) []byte {
	off := y * p.RowStride
	return p.Pixels[off : off+p.RowStride]
}

// AttrPixmap is the two-grid layout used by attribute-mode framebuffers:
// a low-bit pixel grid plus a lower-resolution attribute grid. Attribute
// rows cover ceil(height/attrHeight) rows, each repeated exactly
// attrHeight times, per the coverage invariant.
type AttrPixmap struct {
	Width, Height       int
	Mode                ColorMode
	AttrHeight          int // pixel rows covered by one attribute row
	PixelRowStride      int
	AttrRowStride       int // bytes per attribute row
	Pixels              []byte
	Attrs               []byte // attrColors entries packed per cell, low bits first
}

// NewAttrPixmap allocates a zero-filled attribute-mode pixmap.
func NewAttrPixmap(width, height, attrHeight int, mode ColorMode) (*AttrPixmap, error) {
	if !mode.IsAttribute() {
		return nil, &EngineError{Operation: "attr pixmap construction", Details: "color mode is not an attribute mode", Err: ErrBadGeometry}
	}
	if width <= 0 || height <= 0 || attrHeight <= 0 {
		return nil, &EngineError{Operation: "attr pixmap construction", Details: "non-positive dimensions", Err: ErrBadGeometry}
	}
	bpp := mode.BitsPerPixel()
	pixelRowBytes := (width*bpp + 7) / 8
	cellW := mode.AttrWidth()
	cells := (width + cellW - 1) / cellW
	// Each cell stores AttrColors() colors, two bytes (little-endian) per color.
	attrColors := mode.AttrColors()
	attrRowBytes := cells * attrColors * 2 // 2 bytes per packed Color entry, generous upper bound
	attrRows := (height + attrHeight - 1) / attrHeight
	return &AttrPixmap{
		Width: width, Height: height, Mode: mode, AttrHeight: attrHeight,
		PixelRowStride: pixelRowBytes,
		AttrRowStride:  attrRowBytes,
		Pixels:         make([]byte, pixelRowBytes*height),
		Attrs:          make([]byte, attrRowBytes*attrRows),
	}, nil
}

// PixelRow returns the packed pixel-grid bytes for row y.
func (p *AttrPixmap) PixelRow(y int) []byte {
	off := y * p.PixelRowStride
	return p.Pixels[off : off+p.PixelRowStride]
}

// AttrRow returns the attribute-cell bytes covering row y — the
// attribute row index is y / AttrHeight, satisfying the coverage
// invariant that every row within one attrHeight band shares the same
// attribute bytes.
func (p *AttrPixmap) AttrRow(y int) []byte {
	attrRowIdx := y / p.AttrHeight
	off := attrRowIdx * p.AttrRowStride
	return p.Attrs[off : off+p.AttrRowStride]
}

// SetCell writes the attrColors()-length palette for one attribute cell
// at (cellX, attrRow). colors[0] occupies the lowest index, matching the
// "color 0 then color 1" ordering convention for a1/a2 attribute bytes.
func (p *AttrPixmap) SetCell(cellX, attrRow int, colors []Color) error {
	cellW := p.Mode.AttrWidth()
	cells := (p.Width + cellW - 1) / cellW
	if cellX < 0 || cellX >= cells {
		return fmt.Errorf("attribute cell x %d out of range [0,%d)", cellX, cells)
	}
	nColors := p.Mode.AttrColors()
	if len(colors) != nColors {
		return fmt.Errorf("attribute cell expects %d colors, got %d", nColors, len(colors))
	}
	rowBytes := p.AttrRow(attrRow * p.AttrHeight)
	base := cellX * nColors * 2
	for i, c := range colors {
		rowBytes[base+i*2] = byte(c)
		rowBytes[base+i*2+1] = byte(c >> 8)
	}
	return nil
}

// CellColor reads back one color from an attribute cell by palette index.
func (p *AttrPixmap) CellColor(cellX, attrRow, index int) Color {
	nColors := p.Mode.AttrColors()
	rowBytes := p.AttrRow(attrRow * p.AttrHeight)
	base := cellX*nColors*2 + index*2
	return Color(rowBytes[base]) | Color(rowBytes[base+1])<<8
}
