package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter renders a progress bar while files are flattened.
type ProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewProgressReporter creates a reporter; quiet suppresses all output.
func NewProgressReporter(quiet bool) *ProgressReporter {
	return &ProgressReporter{quiet: quiet}
}

// Start begins a bar over total steps.
func (p *ProgressReporter) Start(total int, description string) {
	if p.quiet || total == 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

// Step advances the bar by one.
func (p *ProgressReporter) Step() {
	if p.bar != nil {
		p.bar.Add(1)
	}
}

// Finish completes the bar.
func (p *ProgressReporter) Finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
