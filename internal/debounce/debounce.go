// Package debounce coalesces bursts of events into a single delayed callback.
package debounce

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Scheduler runs f once after d has elapsed. clock.RealClock and the fake
// clock from k8s.io/utils/clock/testing both satisfy it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) clock.Timer
}

var defaultScheduler Scheduler = clock.RealClock{}

// Debouncer runs fn once the triggers stop arriving for delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	sched Scheduler
	timer clock.Timer
	gen   uint64
	fn    func()
}

func New(delay time.Duration, fn func()) *Debouncer {
	return NewWithScheduler(delay, fn, defaultScheduler)
}

func NewWithScheduler(delay time.Duration, fn func(), sched Scheduler) *Debouncer {
	if sched == nil {
		sched = defaultScheduler
	}
	return &Debouncer{delay: max(delay, 0), sched: sched, fn: fn}
}

func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A Stop or a newer Trigger may have raced with this timer.
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()
	fn()
}
