package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of events per path. The callback fires once
// per path after delay has passed without a new event for it.
type Debouncer struct {
	delay    time.Duration
	pending  map[string]*time.Timer
	callback func(path string)
	mu       sync.Mutex
}

// NewDebouncer creates a new Debouncer with the specified delay and callback.
func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		pending:  make(map[string]*time.Timer),
		callback: callback,
	}
}

// Add schedules path, restarting its timer if it is already pending.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Add may have replaced this timer after it fired.
		if d.pending[path] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.pending, path)
		d.mu.Unlock()

		if d.callback != nil {
			d.callback(path)
		}
	})
	d.pending[path] = timer
}

// Cancel removes a pending path. It is a no-op for unknown paths.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		timer.Stop()
		delete(d.pending, path)
	}
}

// CancelAll cancels all pending callbacks.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}

// PendingCount returns the number of paths waiting for their callback.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// IsPending reports whether path is waiting for its callback.
func (d *Debouncer) IsPending(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.pending[path]
	return exists
}

// GetDelay returns the configured debounce delay.
func (d *Debouncer) GetDelay() time.Duration {
	return d.delay
}
