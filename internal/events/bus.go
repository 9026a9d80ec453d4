// Package events is the in-process publish/subscribe hub that carries debugger
// lifecycle signals to their subscribers.
//
// A Bus is created once at process start and passed to every component that
// publishes or subscribes. Delivery is synchronous: Publish returns after every
// handler registered on the topic has returned, in registration order. There
// is no buffering and no replay, so a handler registered after an event was
// published never sees it.
package events

import (
	"sync"

	"github.com/trebuchet-org/scide/internal/domain"
)

// Handler receives the payload of a published event. Handlers run on the
// publisher's goroutine and must not block for long.
type Handler = func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a topic-based publish/subscribe hub. The zero value is not usable,
// use NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	topics map[domain.Topic][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		topics: make(map[domain.Topic][]subscription),
	}
}

// Subscribe registers handler on topic and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic domain.Topic, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic domain.Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, s := range subs {
		if s.id == id {
			// Copy so that an in-flight Publish keeps iterating its own snapshot
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.topics, topic)
			} else {
				b.topics[topic] = next
			}
			return
		}
	}
}

// Publish delivers payload to every handler of topic. Publishing on a topic
// without subscribers does nothing.
func (b *Bus) Publish(topic domain.Topic, payload any) {
	b.mu.RLock()
	subs := b.topics[topic]
	b.mu.RUnlock()

	// Handlers run outside the lock so they may subscribe, unsubscribe or
	// publish themselves.
	for _, s := range subs {
		s.handler(payload)
	}
}

// SubscriberCount returns the number of handlers registered on topic.
func (b *Bus) SubscriberCount(topic domain.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
