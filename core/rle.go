// Package core implements the frame-local run-length codec for
// 1-byte-per-pixel monochrome bitmap streams.
//
// A stream is a sequence of tokens. A run token is a marker byte followed by
// a one or two byte length; a literal token is either a plain byte or a
// marker byte followed by the escape byte. Runs never cross a frame boundary.
package core

import "errors"

const (
	FrameSize = 1024

	PixelOff byte = 0x00
	PixelOn  byte = 0xFF

	MarkerOff byte = 0x55 // run of PixelOff
	MarkerOn  byte = 0xAA // run of PixelOn
	Escape    byte = 0x00

	MaxRun      = 0x7FFF
	MinRun      = 2
	maxShortRun = 0x7F
	continued   = 0x80
)

var (
	ErrTruncatedStream     = errors.New("truncated stream")
	ErrInvalidRunLength    = errors.New("invalid run length")
	ErrFrameLengthMismatch = errors.New("frame length mismatch")
)

func isMarker(b byte) bool {
	return b == MarkerOff || b == MarkerOn
}

func isPixel(b byte) bool {
	return b == PixelOff || b == PixelOn
}

func markerFor(pixel byte) byte {
	if pixel == PixelOff {
		return MarkerOff
	}
	return MarkerOn
}

func pixelFor(marker byte) byte {
	if marker == MarkerOff {
		return PixelOff
	}
	return PixelOn
}

// appendRunLength writes n (1..MaxRun) as a little-endian varint with at
// most two bytes.
func appendRunLength(dst []byte, n int) []byte {
	if n <= maxShortRun {
		return append(dst, byte(n))
	}
	return append(dst, byte(n&maxShortRun)|continued, byte((n>>7)&0xFF))
}

// appendRun splits length into chunks of at most MaxRun.
func appendRun(dst []byte, pixel byte, length int) []byte {
	marker := markerFor(pixel)
	for length > 0 {
		chunk := min(length, MaxRun)
		dst = append(dst, marker)
		dst = appendRunLength(dst, chunk)
		length -= chunk
	}
	return dst
}

func appendLiteral(dst []byte, b byte) []byte {
	if isMarker(b) {
		return append(dst, b, Escape)
	}
	return append(dst, b)
}
