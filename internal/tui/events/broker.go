// Package events distributes application events to the UI. The evaluation
// worker, config watcher and history writer publish here; the bubbletea loop
// subscribes and drains its channel as tea messages, so UI state is only ever
// touched on the UI goroutine.
package events

import (
	"sync"
)

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  16,
	}
}

// Subscribe creates a subscription to specific event types. With no types it
// subscribes to everything.
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)

	if len(eventTypes) == 0 {
		eventTypes = []EventType{"*"}
	}
	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription and closes its channel. A channel
// registered under several event types is closed exactly once.
func (b *Broker) Unsubscribe(ch <-chan Event, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		eventTypes = make([]EventType, 0, len(b.subscribers))
		for eventType := range b.subscribers {
			eventTypes = append(eventTypes, eventType)
		}
	}
	var removed chan Event
	for _, eventType := range eventTypes {
		if found := b.removeChannel(eventType, ch); found != nil {
			removed = found
		}
	}
	if removed == nil {
		return
	}
	for _, subscribers := range b.subscribers {
		for _, other := range subscribers {
			if other == removed {
				return
			}
		}
	}
	close(removed)
}

// Publish sends an event to all subscribers. Slow subscribers whose buffers
// are full miss the event rather than block the publisher; publishers include
// the evaluation worker, which must never stall on the UI.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[event.Type] {
		select {
		case ch <- event:
		default:
		}
	}
	for _, ch := range b.subscribers["*"] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishAsync sends an event without making the caller wait for the lock.
func (b *Broker) PublishAsync(event Event) {
	go b.Publish(event)
}

func (b *Broker) removeChannel(eventType EventType, target <-chan Event) chan Event {
	subscribers := b.subscribers[eventType]
	for i, ch := range subscribers {
		if ch == target {
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			if len(b.subscribers[eventType]) == 0 {
				delete(b.subscribers, eventType)
			}
			return ch
		}
	}
	return nil
}

// Clear removes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			close(ch)
		}
	}
	b.subscribers = make(map[EventType][]chan Event)
}
