package core

import "iter"

// Frames yields consecutive FrameSize windows of src with their index. The
// last frame may be shorter. The yielded slices alias src.
func Frames(src []byte) iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i, off := 0, 0; off < len(src); i, off = i+1, off+FrameSize {
			end := min(off+FrameSize, len(src))
			if !yield(i, src[off:end:end]) {
				return
			}
		}
	}
}

func FrameCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + FrameSize - 1) / FrameSize
}
