// Package pubsub is an in-process, best-effort event broker. Every
// subscriber owns a buffered channel; a publisher never waits on a slow
// subscriber, the event is dropped for that subscriber instead.
package pubsub

import (
	"sync"
)

const DefaultBuffer = 16

type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]chan T
	next   uint64
	buffer int
	closed bool
}

func NewBroker[T any](buffer int) *Broker[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker[T]{
		subs:   make(map[uint64]chan T),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func is safe to
// call more than once; it closes the channel.
func (b *Broker[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broker[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish hands event to every subscriber with room in its buffer and
// returns how many received it.
func (b *Broker[T]) Publish(event T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Later Subscribe calls get a closed channel.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
