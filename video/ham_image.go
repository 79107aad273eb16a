// ham_image.go - Persisted HAM image file decoder (§6.3)

package video

import (
	"encoding/binary"
	"io"
)

const hamImageMagic = 3109478632

// DecodeHAMImage reads the little-endian HAM image layout: a fixed
// header, a packed colormap, then an 8-bit index stream. The on-disk
// relative codes are biased to a mid-grey center; this reconstructs the
// signed delta by subtracting that center color.
func DecodeHAMImage(r io.Reader) (*Pixmap, *HAMColorMap, error) {
	var header struct {
		Magic    uint32
		Tag      [4]byte
		Width    uint16
		Height   uint16
		RBits    uint8
		GBits    uint8
		BBits    uint8
		IBits    uint8
		RShift   uint8
		GShift   uint8
		BShift   uint8
		IShift   uint8
		NumAbs   uint16
		NumRel   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "short header", Err: err}
	}
	if header.Magic != hamImageMagic {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "bad magic", Err: ErrBadHAMImage}
	}
	if header.Tag != [4]byte{'r', 'g', 'b', 0} {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "unrecognised tag", Err: ErrBadHAMImage}
	}

	format := ColorFormat{Depth: 8, Order: OrderRGB, RBits: uint(header.RBits), GBits: uint(header.GBits), BBits: uint(header.BBits)}
	colorBits := int(header.RBits) + int(header.GBits) + int(header.BBits)
	if colorBits > 8 {
		format.Depth = 16
	}
	if colorBits > 16 {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "color model does not fit native Color width", Err: ErrBadHAMImage}
	}

	numAbs := int(header.NumAbs)
	firstRel := 256 - int(header.NumRel)
	cmap, err := NewHAMColorMap(format, numAbs, firstRel)
	if err != nil {
		return nil, nil, err
	}

	bytesPerEntry := 1
	if format.Depth == 16 {
		bytesPerEntry = 2
	}
	raw := make([]byte, 256*bytesPerEntry)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "short colormap", Err: err}
	}

	readEntry := func(i int) Color {
		if bytesPerEntry == 2 {
			return Color(binary.LittleEndian.Uint16(raw[i*2:]))
		}
		return Color(raw[i])
	}

	midGrey := format.FromRGB8(128, 128, 128)
	mr, mg, mb := format.Unpack(midGrey)

	for i := 0; i < numAbs; i++ {
		cmap.Abs[i] = readEntry(i)
	}
	for i := firstRel; i < 256; i++ {
		biased := readEntry(i)
		br, bg, bb := format.Unpack(biased)
		cmap.RelDelta[i] = ColorDelta{
			DR: int(br) - int(mr),
			DG: int(bg) - int(mg),
			DB: int(bb) - int(mb),
		}
	}

	pixmap, err := NewPixmap(int(header.Width), int(header.Height), Indexed8)
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(r, pixmap.Pixels); err != nil {
		return nil, nil, &EngineError{Operation: "HAM image decode", Details: "short index stream", Err: err}
	}
	return pixmap, cmap, nil
}
