package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadToken(t *testing.T) {
	tests := []struct {
		name     string
		stream   []byte
		expected Token
	}{
		{name: "plain literal", stream: []byte{0x13}, expected: Literal(0x13)},
		{name: "off pixel literal", stream: []byte{0x00}, expected: Literal(0x00)},
		{name: "escaped off marker", stream: []byte{0x55, 0x00}, expected: Literal(0x55)},
		{name: "escaped on marker", stream: []byte{0xAA, 0x00}, expected: Literal(0xAA)},
		{name: "short run", stream: []byte{0x55, 0x7F}, expected: Run(0x00, 127)},
		{name: "long run", stream: []byte{0xAA, 0xFF, 0xFF}, expected: Run(0xFF, MaxRun)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.stream)

			tok, err := ReadToken(r)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tok)
			assert.Zero(t, r.Len())
		})
	}
}

func TestTokenAppendTo(t *testing.T) {
	for length := 1; length <= 2*MaxRun+5; length += 97 {
		stream := Run(PixelOn, length).AppendTo(nil)

		total := 0
		for tok, err := range Tokens(stream) {
			require.NoError(t, err)
			require.Equal(t, KindRun, tok.Kind)
			require.LessOrEqual(t, tok.Length, MaxRun)
			total += tok.Length
		}
		assert.Equal(t, length, total)
	}

	assert.Equal(t, []byte{0xAA, 0x00}, Literal(0xAA).AppendTo(nil))
	assert.Equal(t, []byte{0x7E}, Literal(0x7E).AppendTo(nil))
}

func TestTokenEscaped(t *testing.T) {
	assert.True(t, Literal(MarkerOff).Escaped())
	assert.True(t, Literal(MarkerOn).Escaped())
	assert.False(t, Literal(0x01).Escaped())
	assert.False(t, Run(PixelOff, 2).Escaped())
}

func TestTokensStopsAtError(t *testing.T) {
	var toks []Token
	var errs []error
	for tok, err := range Tokens([]byte{0x01, 0x55, 0x02, 0xAA}) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, tok)
	}

	assert.Equal(t, []Token{Literal(0x01), Run(PixelOff, 2)}, toks)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrTruncatedStream)
}

func TestInspect(t *testing.T) {
	src := []byte{0x00, 0x00, 0x00, 0x55, 0x13, 0xFF, 0xAA, 0xFF, 0xFF}
	stats, err := Inspect(Encode(src))
	require.NoError(t, err)

	assert.Equal(t, Stats{
		Frames:     1,
		Runs:       2,
		RunPixels:  5,
		Literals:   4,
		Escaped:    2,
		Decoded:    len(src),
		Encoded:    len(Encode(src)),
		LongestRun: 3,
	}, stats)
	assert.InDelta(t, float64(stats.Encoded)/float64(len(src)), stats.Ratio(), 1e-9)
}

func TestInspectFrames(t *testing.T) {
	src := stripes(7*FrameSize + 1)
	stats, err := Inspect(Encode(src))
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Frames)
	assert.Equal(t, len(src), stats.Decoded)
	assert.Less(t, stats.Ratio(), 1.0)
}

func TestInspectEmpty(t *testing.T) {
	stats, err := Inspect(nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, stats.Ratio())
}

func TestInspectTruncated(t *testing.T) {
	_, err := Inspect([]byte{0x42, 0x42, 0xAA, 0x85})
	assert.ErrorIs(t, err, ErrTruncatedStream)
	assert.Contains(t, err.Error(), "decoded byte 2")
}
