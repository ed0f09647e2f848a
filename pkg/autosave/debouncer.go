package autosave

import (
	"sync"
	"time"
)

// debouncer coalesces a burst of triggers into a single fire after a quiet
// period. Every add resets the timer, so only the last callback of a burst
// actually runs.
type debouncer struct {
	quiet time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{quiet: quiet}
}

// add schedules fire after the quiet period, replacing any pending trigger.
func (d *debouncer) add(fire func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Cancel the pending trigger; if Stop reports false the timer already
	// fired (or is firing) and accounts for itself.
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.quiet, func() {
		defer d.wg.Done()
		fire()
	})
}

// stopAndWait cancels any pending trigger, refuses new ones, and waits for
// in-flight callbacks to finish, up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
