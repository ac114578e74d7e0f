// Package watch is an in-process change-notification hub. Handlers publish
// an event after every successful write; subscribers receive a stream of
// events plus an immediate replay of the latest event per table, so a late
// subscriber can re-evaluate its queries without waiting for the next write.
package watch

import (
	"sync"
	"time"
)

// Event describes one change to a table.
type Event struct {
	Table string    `json:"table"`
	Op    string    `json:"op"` // created, updated or deleted
	ID    int       `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

const subscriberBuffer = 16

type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	latest map[string]Event
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[int]chan Event),
		latest: make(map[string]Event),
	}
}

// Publish records the event as the latest for its table and fans it out to
// every subscriber. Slow subscribers whose buffer is full miss the event;
// there is no backpressure, the latest-value replay covers them on the next
// subscription.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[e.Table] = e
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned channel first replays
// the latest known event of every table, then delivers live events. The
// cancel func must be called when the subscriber's scope ends; it is safe
// to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++

	ch := make(chan Event, subscriberBuffer)
	for _, e := range h.latest {
		select {
		case ch <- e:
		default:
		}
	}
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Default is the hub the HTTP layer publishes to.
var Default = NewHub()

// Publish sends an event through the default hub.
func Publish(table, op string, id int) {
	Default.Publish(Event{Table: table, Op: op, ID: id})
}
