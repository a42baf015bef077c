package debounce

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// State reports whether a channel has a notification scheduled.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	default:
		return "idle"
	}
}

type options struct {
	name     string
	sched    Scheduler
	dispatch func(func())
}

type Option func(*options)

// WithName labels the channel in debug logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.sched = s
		}
	}
}

// WithDispatch hands every timer firing to fn instead of running it on the
// timer goroutine. Owners with an event loop pass their post function so the
// staleness check and the callback run on that loop.
func WithDispatch(fn func(func())) Option {
	return func(o *options) {
		if fn != nil {
			o.dispatch = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		sched:    defaultScheduler,
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Channel turns a stream of raw input values into one change notification
// per settled value. The value shown to the user (Current) updates at once;
// the consumer only hears about it after delay without newer input.
type Channel[T comparable] struct {
	mu       sync.Mutex
	ctx      context.Context
	name     string
	delay    time.Duration
	sched    Scheduler
	dispatch func(func())
	onChange func(T)

	current   T
	committed T
	timer     clock.Timer
	gen       uint64
	disposed  bool
	stopCtx   func() bool
}

// NewChannel creates a channel whose lifetime is bound to ctx: cancelling
// ctx disposes it. Callers passing context.Background must call Dispose
// themselves.
func NewChannel[T comparable](ctx context.Context, initial T, delay time.Duration, onChange func(T), opts ...Option) *Channel[T] {
	o := newOptions(opts)
	if onChange == nil {
		onChange = func(T) {}
	}
	c := &Channel[T]{
		ctx:       ctx,
		name:      o.name,
		delay:     max(delay, 0),
		sched:     o.sched,
		dispatch:  o.dispatch,
		onChange:  onChange,
		current:   initial,
		committed: initial,
	}
	c.stopCtx = context.AfterFunc(ctx, c.Dispose)
	return c
}

// OnRawInput records v as the current value and restarts the quiescence
// window.
func (c *Channel[T]) OnRawInput(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		slog.Debug("raw input on disposed channel", slog.String("channel", c.name))
		return
	}
	c.current = v
	c.cancelTimerLocked()
	gen := c.gen
	c.timer = c.sched.AfterFunc(c.delay, func() {
		c.dispatch(func() { c.fire(gen) })
	})
}

// OnExternalReset adopts v as both the current and the committed value
// without notifying. Any pending notification is dropped.
func (c *Channel[T]) OnExternalReset(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.cancelTimerLocked()
	c.current = v
	c.committed = v
}

// Dispose cancels any pending notification. It is safe to call more than
// once.
func (c *Channel[T]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.cancelTimerLocked()
	stop := c.stopCtx
	c.stopCtx = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (c *Channel[T]) Current() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Channel[T]) Committed() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

func (c *Channel[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		return Pending
	}
	return Idle
}

func (c *Channel[T]) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

func (c *Channel[T]) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := Idle
	if c.timer != nil {
		state = Pending
	}
	return fmt.Sprintf("%s(%s, current=%v, committed=%v)", c.name, state, c.current, c.committed)
}

// cancelTimerLocked bumps the generation so a firing that already left the
// timer is recognised as stale.
func (c *Channel[T]) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Channel[T]) fire(gen uint64) {
	c.mu.Lock()
	if c.disposed || c.ctx.Err() != nil || gen != c.gen || c.timer == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	v := c.current
	if v == c.committed {
		c.mu.Unlock()
		return
	}
	c.committed = v
	c.mu.Unlock()
	slog.Debug("debounced value settled", slog.String("channel", c.name), slog.Any("value", v))
	c.onChange(v)
}
