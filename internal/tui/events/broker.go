// Package events carries notifications from background goroutines, such
// as the directory watcher, into the Bubble Tea loop.
package events

import (
	"sync"
)

const wildcard EventType = "*"

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  16,
	}
}

// Subscribe returns a channel receiving the given event types, or every
// event when none are named.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	if len(eventTypes) == 0 {
		eventTypes = []EventType{wildcard}
	}
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}
	return ch
}

// Unsubscribe removes ch from every event type and closes it.
func (b *Broker) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var target chan Event
	for eventType, subs := range b.subscribers {
		kept := subs[:0]
		for _, c := range subs {
			if c == ch {
				target = c
				continue
			}
			kept = append(kept, c)
		}
		if len(kept) == 0 {
			delete(b.subscribers, eventType)
		} else {
			b.subscribers[eventType] = kept
		}
	}
	if target != nil {
		close(target)
	}
}

// Publish delivers event without blocking. Subscribers whose buffer is
// full miss it.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	send := func(subs []chan Event) {
		for _, ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
	send(b.subscribers[event.Type])
	if event.Type != wildcard {
		send(b.subscribers[wildcard])
	}
}

// Clear removes all subscriptions, closing their channels.
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]bool)
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}
	b.subscribers = make(map[EventType][]chan Event)
}
