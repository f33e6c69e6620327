package search

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer emits the most recent pushed value once no new value has
// arrived for the quiet period. Superseded values are never emitted.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	emit    func(T)
	timer   Timer
	gen     uint64
	stopped bool
}

func NewDebouncer[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return NewDebouncerWithClock(delay, realAfterFunc, emit)
}

func NewDebouncerWithClock[T any](delay time.Duration, after AfterFunc, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		after: after,
		emit:  emit,
	}
}

// Push replaces the pending value and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() {
		d.fire(gen, v)
	})
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	// a timer that lost the race with Stop or Push still runs
	if gen != d.gen || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

// Pending reports whether a value is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop drops any pending value. Later pushes are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
