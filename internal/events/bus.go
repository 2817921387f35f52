// Package events provides the publish-subscribe mechanism consumers
// (a simulator, the physical LED driver) use to observe frames and
// model-changed notifications without the control plane writing
// through to them directly: OSC writes mutate only the model, and
// consumers subscribe to a frame topic and a model-changed topic to
// refresh themselves.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Topic identifies a subscription channel.
type Topic string

const (
	// TopicFrame carries a rendered frame, published once per render
	// tick.
	TopicFrame Topic = "FRAME_READY"
	// TopicModelChanged carries a lightweight notification whenever an
	// OSC write mutates the model (palette, effect, or segment).
	TopicModelChanged Topic = "MODEL_CHANGED"
)

// Subscriber is a single subscription's delivery channel.
type Subscriber struct {
	ID      string
	Topic   Topic
	Channel chan any
}

// Bus fans messages out to subscribers of a topic.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]*Subscriber
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{subscribers: make(map[Topic][]*Subscriber)}
}

// Subscribe registers a new subscription with the given buffer size.
func (b *Bus) Subscribe(topic Topic, bufferSize int) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscriber{
		ID:      uuid.NewString(),
		Topic:   topic,
		Channel: make(chan any, bufferSize),
	}
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[sub.Topic]
	for i, s := range subs {
		if s.ID == sub.ID {
			close(s.Channel)
			b.subscribers[sub.Topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends a message to every subscriber of a topic. Delivery is
// non-blocking: a subscriber with a full buffer misses the message
// rather than stalling the publisher. The render and control-plane
// tasks must never block on a slow consumer.
func (b *Bus) Publish(topic Topic, message any) {
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.Channel <- message:
		default:
		}
	}
}

// SubscriberCount returns the number of subscribers for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}
