// Package debounce delays an action until its trigger has gone quiet.
//
// A [Debouncer] coalesces bursts of triggers into a single call carrying the
// most recent argument. It is used to turn keystrokes into suggestion
// lookups without issuing a request per key.
//
//	d := debounce.New(250*time.Millisecond, func(q string) {
//	    suggestions := suggester.Suggest(ctx, q)
//	    // ...
//	})
//	d.Trigger("oct")
//	d.Trigger("octo") // only "octo" is looked up
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs an action after a quiet period. It is safe for concurrent use.
type Debouncer[T any] struct {
	delay  time.Duration
	action func(T)

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// New creates a Debouncer that calls action delay after the last Trigger.
func New[T any](delay time.Duration, action func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, action: action}
}

// Trigger (re)starts the quiet period. Any pending call is dropped and
// replaced by one carrying arg.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, arg) })
}

// Cancel drops the pending call, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) fire(seq uint64, arg T) {
	d.mu.Lock()
	// A timer whose Stop lost the race still fires; its sequence is stale.
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.action(arg)
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
