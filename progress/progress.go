package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders per-frame bars for encode and decode runs.
type Progress struct {
	progress *mpb.Progress
	out      io.Writer
}

func New() *Progress {
	return &Progress{
		progress: mpb.New(),
	}
}

// NewWithOutput renders to w instead of stdout.
func NewWithOutput(w io.Writer) *Progress {
	return &Progress{
		progress: mpb.New(mpb.WithOutput(w)),
		out:      w,
	}
}

// NewBar returns a bar counting frames.
func (p *Progress) NewBar(frames int64, text string) *mpb.Bar {
	bar := p.progress.AddBar(frames,
		mpb.PrependDecorators(
			decor.Name(text, decor.WC{W: 12, C: decor.DindentRight}),
			decor.CountersNoUnit(" %d / %d frames", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO, decor.WC{W: 12, C: decor.DindentRight}),
		),
	)

	return bar
}

// Tracker counts frames on one bar. A nil Tracker does nothing, which is
// how quiet runs and empty inputs skip rendering.
type Tracker struct {
	progress *Progress
	bar      *mpb.Bar
}

// Track adds a frame bar. It returns nil for zero frames, since an mpb bar
// without a total never completes.
func (p *Progress) Track(frames int64, text string) *Tracker {
	if frames <= 0 {
		return nil
	}

	return &Tracker{
		progress: p,
		bar:      p.NewBar(frames, text),
	}
}

// Frame advances the bar by one. It is safe to call from several goroutines.
func (t *Tracker) Frame() {
	if t == nil {
		return
	}
	t.bar.Increment()
}

// Done waits for rendering to finish. A failed run drops its bar first so
// Wait does not block on an incomplete total.
func (t *Tracker) Done(err error) {
	if t == nil {
		return
	}
	if err != nil {
		t.bar.Abort(true)
	}
	t.progress.Wait()
}

func (p *Progress) Wait() {
	p.progress.Wait()
}

func (p *Progress) Reset() {
	if p.progress != nil {
		p.progress.Wait()
	}

	if p.out != nil {
		p.progress = mpb.New(mpb.WithOutput(p.out))
		return
	}
	p.progress = mpb.New()
}

// DefaultBar is a byte bar for writing output files.
func DefaultBar(maxBytes int64, desc string) *progressbar.ProgressBar {
	writer := ansi.NewAnsiStdout()
	return newByteBar(writer, maxBytes, desc)
}

func newByteBar(writer io.Writer, maxBytes int64, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		maxBytes,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowTotalBytes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(writer, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Execute copies n bytes from src to dst, advancing bar as it goes.
func Execute(dst io.Writer, src io.Reader, n int64, bar io.Writer) (int64, error) {
	return io.CopyN(io.MultiWriter(dst, bar), src, n)
}
