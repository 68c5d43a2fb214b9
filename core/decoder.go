package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const maxPrealloc = 16 << 20

// Decoder reads a bare token stream one frame at a time.
type Decoder struct {
	r         io.ByteReader
	length    int64 // original byte count, or -1 when implied by end of stream
	remaining int64
	frame     int

	// OnFrame is called after each frame is decoded.
	OnFrame func(index, n int)
}

// NewDecoder returns a Decoder for a stream of length original bytes. A
// negative length makes the end of the stream terminate the last frame.
func NewDecoder(r io.Reader, length int64) *Decoder {
	d := &Decoder{}
	d.Reset(r, length)
	return d
}

// Reset rewinds d onto r, dropping all frame state.
func (d *Decoder) Reset(r io.Reader, length int64) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	d.r = br
	d.length = length
	d.remaining = length
	d.frame = 0
}

// Frame is the index of the next frame ReadFrame will decode.
func (d *Decoder) Frame() int {
	return d.frame
}

// ReadFrame decodes the next frame into dst, which must hold at least
// FrameSize bytes, and returns its length. After the last frame it returns
// 0, io.EOF.
func (d *Decoder) ReadFrame(dst []byte) (int, error) {
	if len(dst) < FrameSize {
		return 0, io.ErrShortBuffer
	}

	want := FrameSize
	if d.length >= 0 {
		if d.remaining == 0 {
			return 0, d.expectEnd()
		}
		want = int(min(d.remaining, FrameSize))
	}

	n := 0
	for n < want {
		tok, err := ReadToken(d.r)
		if errors.Is(err, io.EOF) {
			if d.length < 0 {
				if n == 0 {
					return 0, io.EOF
				}
				break
			}
			return n, d.errorf("%w: stream ended after %d of %d bytes", ErrFrameLengthMismatch, n, want)
		}
		if err != nil {
			return n, d.errorf("%w", err)
		}

		if n+tok.Length > want {
			return n, d.errorf("%w: %s overruns frame end at %d of %d bytes", ErrFrameLengthMismatch, tok, n, want)
		}

		fill(dst[n:n+tok.Length], tok.Value)
		n += tok.Length
	}

	if d.length >= 0 {
		d.remaining -= int64(n)
	}

	if d.OnFrame != nil {
		d.OnFrame(d.frame, n)
	}
	d.frame++

	return n, nil
}

// DecodeAll decodes every remaining frame.
func (d *Decoder) DecodeAll() ([]byte, error) {
	out := make([]byte, 0, min(max(d.remaining, 0), maxPrealloc))

	frame := make([]byte, FrameSize)
	for {
		n, err := d.ReadFrame(frame)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, frame[:n]...)
	}
}

func (d *Decoder) expectEnd() error {
	if _, err := d.r.ReadByte(); err == nil {
		return d.errorf("%w: trailing data after %d bytes", ErrFrameLengthMismatch, d.length)
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	return io.EOF
}

func (d *Decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("frame %d: "+format, append([]any{d.frame}, args...)...)
}

// Decode decodes a bare stream whose original length is n.
func Decode(src []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrFrameLengthMismatch, n)
	}
	return NewDecoder(bytes.NewReader(src), int64(n)).DecodeAll()
}

// DecodeAll decodes a bare stream whose length is implied by its end.
func DecodeAll(src []byte) ([]byte, error) {
	return NewDecoder(bytes.NewReader(src), -1).DecodeAll()
}

func fill(dst []byte, b byte) {
	for i := range dst {
		dst[i] = b
	}
}
