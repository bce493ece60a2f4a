package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sereci/sirepre/internal/domain/registration"
	"github.com/sereci/sirepre/internal/domain/shared"
)

// Envelope is the wire form of an event on the message bus.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// EventSerializer converts events to envelopes and back. Deserialising
// requires the type to be registered.
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer returns a serializer with the registration events
// registered.
func NewEventSerializer() *EventSerializer {
	s := &EventSerializer{registry: make(map[string]reflect.Type)}
	s.Register(registration.EventTypeApplicantRegistered, &registration.ApplicantRegisteredEvent{})
	s.Register(registration.EventTypeReviewRecorded, &registration.ReviewRecordedEvent{})
	return s
}

// Register maps eventType to the concrete type of instance.
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}

// Serialize wraps event in an Envelope and encodes it.
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}
	return json.Marshal(Envelope{
		ID:            event.EventID(),
		Type:          event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	})
}

// Deserialize decodes an Envelope back into the registered event type.
func (s *EventSerializer) Deserialize(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	s.mu.RLock()
	t, ok := s.registry[env.Type]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", env.Type)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("type %s does not implement DomainEvent", t)
	}
	return event, nil
}
