package core

import "fmt"

// Stats summarizes a bare token stream.
type Stats struct {
	Frames     int
	Runs       int
	RunPixels  int
	Literals   int
	Escaped    int
	Decoded    int
	Encoded    int
	LongestRun int
}

// Ratio is encoded size over decoded size, or 0 for an empty stream.
func (s Stats) Ratio() float64 {
	if s.Decoded == 0 {
		return 0
	}
	return float64(s.Encoded) / float64(s.Decoded)
}

func (s Stats) String() string {
	return fmt.Sprintf("frames=%d runs=%d run_pixels=%d literals=%d escaped=%d decoded=%d encoded=%d ratio=%.3f",
		s.Frames, s.Runs, s.RunPixels, s.Literals, s.Escaped, s.Decoded, s.Encoded, s.Ratio())
}

// Inspect walks a bare stream and counts its tokens. It checks the token
// grammar only; frame boundaries are not validated.
func Inspect(src []byte) (Stats, error) {
	s := Stats{Encoded: len(src)}

	for tok, err := range Tokens(src) {
		if err != nil {
			return s, fmt.Errorf("at decoded byte %d: %w", s.Decoded, err)
		}

		switch tok.Kind {
		case KindRun:
			s.Runs++
			s.RunPixels += tok.Length
			s.LongestRun = max(s.LongestRun, tok.Length)
		case KindLiteral:
			s.Literals++
			if tok.Escaped() {
				s.Escaped++
			}
		}
		s.Decoded += tok.Length
	}

	s.Frames = FrameCount(s.Decoded)

	return s, nil
}
