// renderers.go - Scanline inner loops covering the 13 color modes
//
// renderIndexed, renderDirect and renderAttribute are parameterized by
// bit depth and attribute cell width, so together they cover all 13
// ColorModes; renderHAMRow serves the HAM plane.
//
// Grounded in video_ula.go's RenderFrame (per-cell ink/paper/bright/flash
// resolution is the model for the a1/a2 attribute renderers — GetColor's
// bit-to-color resolution becomes AttrPixmap.CellColor) and video_vga.go's
// planar palette expansion (palette-as-uint32-LUT, direct stores into a
// flat buffer). The "hardware interpolator" (field-extraction + add-base,
// preconfigured once per frame) has no silicon equivalent on a hosted
// CPU; it is modeled as the palette []uint32 lookup table built
// once per frame by FramebufferPlane.Vblank, so the renderer's inner loop
// is still "index into a small table, shift the source byte" exactly as
// the original interpolator did in one cycle.
//
// Ordering: low bits of each source byte are the left-most pixels
// (shift right to advance), matching the spec's bit-ordering contract.

package video

// renderIndexed unpacks bpp-wide indices from pixels (bpp in 1,2,4,8),
// resolves each through cmap, and writes `width` native-depth pixels
// packed pixelsPerWord-to-a-word into buf.
func renderIndexed(buf []uint32, width, bpp int, pixels []byte, cmap *ColorMap, palette []uint32) {
	mask := byte(1<<uint(bpp) - 1)
	perByte := 8 / bpp
	pixelsPerWord := PixelsPerDMAWord(cmap.Format.Depth)
	var word uint32
	wordIdx := 0
	shiftInWord := uint(0)
	colorBits := uint(cmap.Format.Depth)

	for x := 0; x < width; x++ {
		byteIdx := x / perByte
		bitOff := uint(x%perByte) * uint(bpp)
		idx := int((pixels[byteIdx] >> bitOff) & mask)
		var raw uint32
		if palette != nil {
			raw = palette[idx]
		} else {
			c, _ := cmap.At(idx)
			raw = uint32(c)
		}
		word |= raw << shiftInWord
		shiftInWord += colorBits
		if x%pixelsPerWord == pixelsPerWord-1 {
			buf[wordIdx] = word
			wordIdx++
			word = 0
			shiftInWord = 0
		}
	}
}

// renderDirect copies packed direct-color pixels straight through,
// repacking from the pixmap's byte layout into ring-buffer words.
func renderDirect(buf []uint32, width int, pixels []byte, depth int) {
	pixelsPerWord := PixelsPerDMAWord(depth)
	bytesPerPixel := depth / 8
	var word uint32
	wordIdx := 0
	shiftInWord := uint(0)

	for x := 0; x < width; x++ {
		off := x * bytesPerPixel
		var raw uint32
		for b := 0; b < bytesPerPixel; b++ {
			raw |= uint32(pixels[off+b]) << (8 * b)
		}
		word |= raw << shiftInWord
		shiftInWord += uint(depth)
		if x%pixelsPerWord == pixelsPerWord-1 {
			buf[wordIdx] = word
			wordIdx++
			word = 0
			shiftInWord = 0
		}
	}
}

// renderAttribute resolves each unit pixel (1 or 2 bits) against the
// attribute cell covering its x position, writing `width` native-depth
// pixels into buf. ap.CellColor supplies the selected color of the cell
// covering pixel x.
func renderAttribute(buf []uint32, width, unitBits, attrWidth int, pixelRow []byte, ap *AttrPixmap, attrRowIdx int, depth int) {
	mask := byte(1<<uint(unitBits) - 1)
	perByte := 8 / unitBits
	pixelsPerWord := PixelsPerDMAWord(depth)
	var word uint32
	wordIdx := 0
	shiftInWord := uint(0)

	for x := 0; x < width; x++ {
		byteIdx := x / perByte
		bitOff := uint(x%perByte) * uint(unitBits)
		sel := int((pixelRow[byteIdx] >> bitOff) & mask)
		cellX := x / attrWidth
		c := ap.CellColor(cellX, attrRowIdx, sel)
		word |= uint32(c) << shiftInWord
		shiftInWord += uint(depth)
		if x%pixelsPerWord == pixelsPerWord-1 {
			buf[wordIdx] = word
			wordIdx++
			word = 0
			shiftInWord = 0
		}
	}
}

// renderHAMRow resolves one row of 8-bit HAM codes, threading the
// running color accumulator, and returns the final accumulator. HAMPlane
// discards it: the next row is primed from this row's first pixel
// instead (§4.5, testable property 6).
func renderHAMRow(buf []uint32, width int, codes []byte, cmap *HAMColorMap, firstColor Color, depth int) (lastColor Color) {
	pixelsPerWord := PixelsPerDMAWord(depth)
	var word uint32
	wordIdx := 0
	shiftInWord := uint(0)
	acc := firstColor

	for x := 0; x < width; x++ {
		code := int(codes[x])
		acc = cmap.Apply(code, acc)
		word |= uint32(acc) << shiftInWord
		shiftInWord += uint(depth)
		if x%pixelsPerWord == pixelsPerWord-1 {
			buf[wordIdx] = word
			wordIdx++
			word = 0
			shiftInWord = 0
		}
	}
	return acc
}
