// Package broadcast provides an in-process, multi-subscriber publish point
// with replay-latest semantics: a new subscriber immediately receives the
// most recently published value (if any), then every later publish in order.
package broadcast

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Broadcast fans published values out to every attached subscriber. It keeps
// only the single newest value for late subscribers; it is transient and
// offers no durability across process restarts.
type Broadcast[T any] struct {
	mu     sync.Mutex
	last   *T
	subs   map[chan T]struct{}
	closed bool
}

func New[T any]() *Broadcast[T] {
	return &Broadcast[T]{subs: map[chan T]struct{}{}}
}

// Publish records v as the latest value and pushes it to every subscriber.
// It never blocks on a slow subscriber: when a subscriber's queue is full,
// the oldest queued value is discarded to make room for the newest.
func (b *Broadcast[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.last = &v
	for ch := range b.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Subscribe attaches a new subscriber and returns its receive channel. The
// latest published value, if any, is already queued on the returned channel.
// The channel is closed when ctx is cancelled or the broadcast shuts down;
// cancelling one subscriber does not affect the producer or other
// subscribers.
func (b *Broadcast[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, subscriberBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	if b.last != nil {
		ch <- *b.last
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()
	return ch
}

func (b *Broadcast[T]) unsubscribe(ch chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Close detaches and closes every subscriber channel. Publish becomes a no-op
// afterwards.
func (b *Broadcast[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
