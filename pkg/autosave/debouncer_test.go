package autosave

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	var fires atomic.Int32

	for i := 0; i < 10; i++ {
		d.add(func() { fires.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	deadline := time.After(time.Second)
	for fires.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected the coalesced trigger to fire")
		case <-time.After(5 * time.Millisecond):
		}
	}
	d.stopAndWait(time.Second)

	if got := fires.Load(); got != 1 {
		t.Errorf("expected a burst to coalesce into 1 fire, got %d", got)
	}
}

func TestDebouncerFiresAfterQuietPeriod(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	fired := make(chan struct{})

	d.add(func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expected the trigger to fire after the quiet period")
	}
	d.stopAndWait(time.Second)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := newDebouncer(time.Hour)
	var fires atomic.Int32

	d.add(func() { fires.Add(1) })
	d.stopAndWait(time.Second)

	if got := fires.Load(); got != 0 {
		t.Errorf("expected the pending trigger to be cancelled, got %d fires", got)
	}

	// Adds after stop are refused.
	d.add(func() { fires.Add(1) })
	time.Sleep(20 * time.Millisecond)
	if got := fires.Load(); got != 0 {
		t.Errorf("expected adds after stop to be ignored, got %d fires", got)
	}
}
