// Package hub fans out feed events to currently-connected subscribers.
// Delivery is best-effort and non-durable: no history, no retry, at most
// one delivery per subscriber per event.
package hub

import (
	"sync"

	"github.com/google/uuid"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
)

const subscriberBufSize = 64

// Subscriber is a live handle onto the event stream. The channel is closed
// on unsubscribe.
type Subscriber struct {
	id     uuid.UUID
	events chan model.FeedEvent
}

// Events returns the channel the hub delivers on.
func (s *Subscriber) Events() <-chan model.FeedEvent {
	return s.events
}

// Hub tracks live subscribers. Subscribe, Unsubscribe and Broadcast may all
// run concurrently from request goroutines.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*Subscriber
	logger      *logger.Logger
}

func New(logger *logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]*Subscriber),
		logger:      logger,
	}
}

// Subscribe registers a new live channel. Events broadcast before this call
// are never replayed.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id:     uuid.New(),
		events: make(chan model.FeedEvent, subscriberBufSize),
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug("hub: subscriber connected", "subscriber_id", sub.id, "total", count)
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	if _, ok := h.subscribers[sub.id]; ok {
		delete(h.subscribers, sub.id)
		close(sub.events)
	}
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug("hub: subscriber disconnected", "subscriber_id", sub.id, "total", count)
}

// Broadcast delivers an event to every current subscriber. A subscriber
// whose buffer is full is skipped so it cannot stall the rest or the
// caller.
func (h *Hub) Broadcast(event model.FeedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			h.logger.Error("hub: subscriber buffer full, dropping event",
				"subscriber_id", sub.id, "action", event.Action)
		}
	}
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
