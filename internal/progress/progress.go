package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Tracker shows progress through the check catalog
type Tracker struct {
	bar     *progressbar.ProgressBar
	total   int
	current int
	mu      sync.Mutex
}

// NewTracker creates a progress bar with total steps written to w
func NewTracker(description string, total int, w io.Writer) *Tracker {
	if total <= 0 {
		total = 1
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(0),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)

	return &Tracker{
		bar:   bar,
		total: total,
	}
}

// Step advances the bar by one check and shows its name
func (t *Tracker) Step(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current++
	t.bar.Describe(fmt.Sprintf("🔍 %s", name))
	t.bar.Add(1)
}

// Finish completes the progress bar
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Fill to 100% if not already there
	if t.current < t.total {
		t.bar.Add(t.total - t.current)
		t.current = t.total
	}
	t.bar.Finish()
}
