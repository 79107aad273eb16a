// shape.go - Shape stream decoder (§6.4)
//
// No sprite implementation exists in the teacher pack; grounded instead
// in original_source/Video/MultiSpritesPlane.h/AnimatedSprite.h for the
// row-cursor and per-frame-duration animation shape, re-expressed as a
// plain Go decoder over io.Reader rather than the original's in-place
// byte-stream cursor.

package video

import (
	"encoding/binary"
	"io"
)

// segment is one run of opaque pixels within a shape row, optionally
// preceded by a transparent gap (Skip pixels) introduced by a CMD{0x0180}.
type segment struct {
	Skip   int // transparent pixels before this segment, within the row
	DX     int8
	Pixels []byte
}

// ShapeRow is the fully decoded set of segments making up one raster
// line of a sprite shape.
type ShapeRow struct {
	Segments []segment
}

// Shape is one decoded frame of sprite pixel data.
type Shape struct {
	Width, Height int
	HotX, HotY    int8
	Rows          []ShapeRow
}

const (
	cmdEnd = 0x0080
	cmdGap = 0x0180
)

// DecodeShape reads one {width,height,hot_x,hot_y} preamble followed by
// its row-descriptor stream, stopping at CMD{END} or once Height rows
// have been produced.
func DecodeShape(r io.Reader) (*Shape, error) {
	var preamble struct {
		Width, Height uint8
		HotX, HotY    int8
	}
	if err := binary.Read(r, binary.LittleEndian, &preamble); err != nil {
		return nil, &EngineError{Operation: "shape decode", Details: "short preamble", Err: err}
	}
	shape := &Shape{Width: int(preamble.Width), Height: int(preamble.Height), HotX: preamble.HotX, HotY: preamble.HotY}

	row := ShapeRow{}
	rowWidth := 0
	pendingSkip := 0

	for len(shape.Rows) < shape.Height {
		marker, err := readInt8(r)
		if err != nil {
			return nil, &EngineError{Operation: "shape decode", Details: "truncated row stream", Err: err}
		}
		if marker == -128 {
			hi, err := readUint8(r)
			if err != nil {
				return nil, &EngineError{Operation: "shape decode", Details: "truncated CMD tag", Err: err}
			}
			tag := uint16(hi)<<8 | 0x0080
			switch tag {
			case cmdEnd:
				if len(row.Segments) > 0 {
					shape.Rows = append(shape.Rows, row)
				}
				return shape, nil
			case cmdGap:
				gap, err := readUint8(r)
				if err != nil {
					return nil, &EngineError{Operation: "shape decode", Details: "truncated gap width", Err: err}
				}
				pendingSkip = int(gap)
			default:
				return nil, &EngineError{Operation: "shape decode", Details: "unrecognised CMD tag", Err: ErrBadShapeStream}
			}
			continue
		}

		width, err := readUint8(r)
		if err != nil {
			return nil, &EngineError{Operation: "shape decode", Details: "truncated PFX width", Err: err}
		}
		pixels := make([]byte, width)
		if _, err := io.ReadFull(r, pixels); err != nil {
			return nil, &EngineError{Operation: "shape decode", Details: "truncated PFX pixels", Err: err}
		}
		row.Segments = append(row.Segments, segment{Skip: pendingSkip, DX: marker, Pixels: pixels})
		pendingSkip = 0
		rowWidth += int(width)

		if rowWidth >= shape.Width {
			shape.Rows = append(shape.Rows, row)
			row = ShapeRow{}
			rowWidth = 0
		}
	}
	return shape, nil
}

// AnimatedShape strings multiple Shape frames with per-frame vblank
// durations.
type AnimatedShape struct {
	Frames    []*Shape
	Durations []uint16 // vblanks per frame
}

// DecodeAnimatedShape reads frameCount consecutive (duration, shape)
// pairs; the frame count is supplied by the caller and is not read from
// the stream.
func DecodeAnimatedShape(r io.Reader, frameCount int) (*AnimatedShape, error) {
	anim := &AnimatedShape{}
	for i := 0; i < frameCount; i++ {
		var dur uint16
		if err := binary.Read(r, binary.LittleEndian, &dur); err != nil {
			return nil, &EngineError{Operation: "animated shape decode", Details: "short duration field", Err: err}
		}
		frame, err := DecodeShape(r)
		if err != nil {
			return nil, err
		}
		anim.Durations = append(anim.Durations, dur)
		anim.Frames = append(anim.Frames, frame)
	}
	return anim, nil
}

func readUint8(r io.Reader) (uint8, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readInt8(r io.Reader) (int8, error) {
	b, err := readUint8(r)
	return int8(b), err
}
