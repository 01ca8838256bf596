package workflow

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of buffer edits into a single trailing-edge
// callback. Each Arm restarts the countdown; the callback fires once the
// buffer has been quiet for the full interval
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebouncer builds a debouncer firing fn after d of inactivity
func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

// Arm restarts the countdown
func (b *Debouncer) Arm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, b.fn)
}

// Stop cancels a pending fire, if any
func (b *Debouncer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
