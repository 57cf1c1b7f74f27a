package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventReservationCreated = "reservation_created"
	EventClientCreated      = "client_created"
	EventEvaluationCreated  = "evaluation_created"
	EventServiceAttached    = "service_attached"
)

// ReservationEventPayload is the minimal reservation snapshot for consumers.
type ReservationEventPayload struct {
	ReservationID int64     `json:"reservation_id"`
	ClientID      int64     `json:"client_id"`
	RoomID        int64     `json:"room_id"`
	Arrival       time.Time `json:"arrival"`
	Departure     time.Time `json:"departure"`
}

type ClientEventPayload struct {
	ClientID int64  `json:"client_id"`
	FullName string `json:"full_name"`
	City     string `json:"city"`
}

// Event is a lightweight in-process domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Handler reacts to an event. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(event *Event) error

// Bus provides in-process pub/sub.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *Bus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
