package testutil

import (
	"context"
	"sync"

	"github.com/sereci/sirepre/internal/domain/shared"
)

// RecordingPublisher is an EventPublisher that keeps what it receives.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

// NewRecordingPublisher creates a publisher returning err from Publish.
func NewRecordingPublisher(err error) *RecordingPublisher {
	return &RecordingPublisher{err: err}
}

// Publish records events.
func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

// Events returns a copy of the recorded events.
func (p *RecordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// EventTypes returns the type of each recorded event in order.
func (p *RecordingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}
