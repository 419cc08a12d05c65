// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

type Bar struct {
	pb          *progressbar.ProgressBar
	description string
	maxItems    int
}

// NewBar returns a progress bar rendered to w with the look of
// progressbar.Default.
func NewBar(w io.Writer, description string, maxItems int) *Bar {
	pb := progressbar.NewOptions64(
		int64(maxItems),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &Bar{
		pb:          pb,
		description: description,
		maxItems:    maxItems,
	}
}

func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Current returns how many items were completed.
func (b *Bar) Current() int {
	return int(b.pb.State().CurrentNum)
}

func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
