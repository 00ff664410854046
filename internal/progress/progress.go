package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a count-style progress bar for paginated fetches where the
// total only becomes known after the first page.
type Tracker struct {
	bar *progressbar.ProgressBar
}

// NewTracker creates a progress bar with the given label and total count.
func NewTracker(label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar}
}

// Set moves the bar to an absolute count.
func (t *Tracker) Set(n int) {
	_ = t.bar.Set(n)
}

// Finish completes the bar and clears it from the terminal.
func (t *Tracker) Finish() {
	_ = t.bar.Finish()
	_ = t.bar.Clear()
}
