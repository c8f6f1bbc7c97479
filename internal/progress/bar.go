package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar renders "Moving files: [#####     ]  50% (5/10)" in place.
type Bar struct {
	w     io.Writer
	width int
	bar   *progressbar.ProgressBar
	max   int64
}

// NewBar builds a bar of width cells writing to w. Nothing is drawn until
// the first Render.
func NewBar(w io.Writer, width int) *Bar {
	return &Bar{w: w, width: width}
}

func (b *Bar) build(total int64) {
	b.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("Moving files:"),
		progressbar.OptionSetWidth(b.width),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	b.max = total
}

// Render moves the bar to done out of total. Total grows while the scan is
// still discovering files.
func (b *Bar) Render(done, total int64) error {
	switch {
	case b.bar == nil:
		b.build(total)
	case total != b.max:
		b.bar.ChangeMax64(total)
		b.max = total
	}
	return b.bar.Set64(done)
}

// Clear erases the bar line.
func (b *Bar) Clear() error {
	if b.bar == nil {
		return nil
	}
	return b.bar.Clear()
}
