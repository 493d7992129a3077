// Package realtime fans room change events out to live subscribers.
//
// Delivery is best effort. Each subscription has a small buffer and events
// published while it is full are dropped; subscribers re-read the table they
// follow instead of relying on every event arriving.
package realtime

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/movienight/internal/domain"
)

const subscriptionBuffer = 16

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Subscription
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		rooms: make(map[string]map[string]*Subscription),
		log:   log,
	}
}

// Subscription receives the change events of one room, optionally limited to
// a set of tables.
type Subscription struct {
	ID     string
	RoomID string

	hub    *Hub
	tables map[domain.Table]struct{}
	events chan domain.ChangeEvent
	once   sync.Once
}

// Subscribe registers a subscriber for roomID. No tables means all tables.
func (h *Hub) Subscribe(roomID string, tables ...domain.Table) *Subscription {
	sub := &Subscription{
		ID:     uuid.NewString(),
		RoomID: roomID,
		hub:    h,
		tables: make(map[domain.Table]struct{}, len(tables)),
		events: make(chan domain.ChangeEvent, subscriptionBuffer),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	h.mu.Lock()
	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[string]*Subscription)
		h.rooms[roomID] = subs
	}
	subs[sub.ID] = sub
	h.mu.Unlock()

	h.log.Debug("subscriber added", slog.String("room_id", roomID), slog.String("subscription_id", sub.ID))
	return sub
}

// Publish delivers event to every matching subscriber of its room without
// blocking.
func (h *Hub) Publish(event domain.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.rooms[event.RoomID] {
		if !sub.follows(event.Table) {
			continue
		}
		select {
		case sub.events <- event:
		default:
			h.log.Debug("subscriber buffer full, event dropped",
				slog.String("room_id", event.RoomID),
				slog.String("subscription_id", sub.ID),
				slog.String("table", string(event.Table)),
			)
		}
	}
}

// Subscribers returns the number of live subscriptions for roomID.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.rooms[sub.RoomID]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.rooms, sub.RoomID)
		}
	}
	close(sub.events)
}

func (s *Subscription) follows(t domain.Table) bool {
	if len(s.tables) == 0 {
		return true
	}
	_, ok := s.tables[t]
	return ok
}

// All yields events until the subscription is closed or the consumer stops.
// Events buffered before Close are still yielded.
func (s *Subscription) All() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range s.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
