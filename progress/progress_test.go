package progress

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerFrames(t *testing.T) {
	progress := NewWithOutput(io.Discard)
	tracker := progress.Track(64, "encoding")
	require.NotNil(t, tracker)

	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Frame()
		}()
	}
	wg.Wait()

	tracker.Done(nil)

	assert.True(t, tracker.bar.Completed())
	assert.Equal(t, int64(64), tracker.bar.Current())
}

func TestTrackerAbort(t *testing.T) {
	progress := NewWithOutput(io.Discard)
	tracker := progress.Track(10, "decoding")
	tracker.Frame()

	// Must not block on the incomplete bar.
	tracker.Done(errors.New("frame 1: truncated stream"))
	assert.True(t, tracker.bar.Aborted())
}

func TestTrackerNil(t *testing.T) {
	tracker := NewWithOutput(io.Discard).Track(0, "empty")
	assert.Nil(t, tracker)

	assert.NotPanics(t, func() {
		tracker.Frame()
		tracker.Done(nil)
	})
}

func TestExecute(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA, 0x05}, 512)
	dst := &bytes.Buffer{}

	bar := newByteBar(io.Discard, int64(len(data)), "writing")

	n, err := Execute(dst, bytes.NewReader(data), int64(len(data)), bar)
	require.NoError(t, err)

	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, dst.Bytes())
	assert.True(t, bar.IsFinished())
}

func TestReset(t *testing.T) {
	progress := NewWithOutput(io.Discard)
	bar := progress.NewBar(1, "first")
	bar.Increment()

	progress.Reset()

	bar = progress.NewBar(2, "second")
	bar.IncrBy(2)
	progress.Wait()

	assert.True(t, bar.Completed())
}
