package core

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type Encoder struct {
	// Workers bounds the number of frames encoded concurrently. Values
	// below 2 encode sequentially.
	Workers int

	// OnFrame is called after each frame is encoded with the frame index and
	// its raw and encoded sizes. With Workers > 1 it is called concurrently
	// and out of order.
	OnFrame func(index, raw, encoded int)
}

func NewEncoder() *Encoder {
	return &Encoder{
		Workers: runtime.NumCPU(),
	}
}

// Encode returns the bare token stream for src.
func Encode(src []byte) []byte {
	out := make([]byte, 0, len(src)/2)
	for _, frame := range Frames(src) {
		out = AppendFrame(out, frame)
	}
	return out
}

// AppendFrame appends the tokens of a single frame to dst. Runs are bounded
// by the end of frame.
func AppendFrame(dst, frame []byte) []byte {
	for i := 0; i < len(frame); {
		v := frame[i]
		if !isPixel(v) {
			dst = appendLiteral(dst, v)
			i++
			continue
		}

		j := i + 1
		for j < len(frame) && frame[j] == v {
			j++
		}

		if n := j - i; n >= MinRun {
			dst = appendRun(dst, v, n)
		} else {
			dst = appendLiteral(dst, v)
		}
		i = j
	}

	return dst
}

// EncodeContext encodes src like Encode. Frames are encoded on up to
// e.Workers goroutines and joined in frame order, so the output does not
// depend on the worker count.
func (e *Encoder) EncodeContext(ctx context.Context, src []byte) ([]byte, error) {
	if e.Workers < 2 {
		return e.encodeSequential(ctx, src)
	}

	encoded := make([][]byte, FrameCount(len(src)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)

	for i, frame := range Frames(src) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			encoded[i] = AppendFrame(make([]byte, 0, len(frame)/2), frame)
			e.frameDone(i, len(frame), len(encoded[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	size := 0
	for _, b := range encoded {
		size += len(b)
	}

	out := make([]byte, 0, size)
	for _, b := range encoded {
		out = append(out, b...)
	}

	return out, nil
}

func (e *Encoder) encodeSequential(ctx context.Context, src []byte) ([]byte, error) {
	out := make([]byte, 0, len(src)/2)
	for i, frame := range Frames(src) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := len(out)
		out = AppendFrame(out, frame)
		e.frameDone(i, len(frame), len(out)-n)
	}
	return out, nil
}

func (e *Encoder) frameDone(index, raw, encoded int) {
	if e.OnFrame != nil {
		e.OnFrame(index, raw, encoded)
	}
}

// PackContext is EncodeContext with the container header prepended.
func (e *Encoder) PackContext(ctx context.Context, src []byte) ([]byte, error) {
	stream, err := e.EncodeContext(ctx, src)
	if err != nil {
		return nil, err
	}
	return packStream(stream, len(src))
}
