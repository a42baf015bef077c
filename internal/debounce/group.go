package debounce

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Group owns one Channel per input key. Closing the group, or cancelling
// the context it was created with, disposes every channel.
type Group[K comparable, T comparable] struct {
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	delay    time.Duration
	opts     []Option
	channels map[K]*Channel[T]
	order    []K
}

func NewGroup[K comparable, T comparable](ctx context.Context, delay time.Duration, opts ...Option) *Group[K, T] {
	ctx, cancel := context.WithCancel(ctx)
	return &Group[K, T]{
		ctx:      ctx,
		cancel:   cancel,
		delay:    delay,
		opts:     opts,
		channels: make(map[K]*Channel[T]),
	}
}

// Open creates the channel for key, disposing any previous one. After Close
// it returns a disposed channel.
func (g *Group[K, T]) Open(key K, initial T, onChange func(T), opts ...Option) *Channel[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	all := append(slices.Clone(g.opts), opts...)
	ch := NewChannel(g.ctx, initial, g.delay, onChange, all...)
	if g.ctx.Err() != nil {
		ch.Dispose()
		return ch
	}
	if prev, ok := g.channels[key]; ok {
		prev.Dispose()
	} else {
		g.order = append(g.order, key)
	}
	g.channels[key] = ch
	return ch
}

func (g *Group[K, T]) Get(key K) (*Channel[T], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[key]
	return ch, ok
}

// Remove disposes the channel for key, as when its input leaves the view.
func (g *Group[K, T]) Remove(key K) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[key]
	if !ok {
		return
	}
	ch.Dispose()
	delete(g.channels, key)
	g.order = slices.DeleteFunc(g.order, func(k K) bool { return k == key })
}

// ResetAll pushes value(key) into every channel as an external reset.
func (g *Group[K, T]) ResetAll(value func(K) T) {
	for _, key := range g.Keys() {
		if ch, ok := g.Get(key); ok {
			ch.OnExternalReset(value(key))
		}
	}
}

// Keys returns the keys in the order they were first opened.
func (g *Group[K, T]) Keys() []K {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.order)
}

func (g *Group[K, T]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.channels)
}

func (g *Group[K, T]) Close() {
	g.mu.Lock()
	channels := g.channels
	g.channels = make(map[K]*Channel[T])
	g.order = nil
	g.mu.Unlock()
	for _, ch := range channels {
		ch.Dispose()
	}
	g.cancel()
}
