package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity is embedded by every stored record.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh ID with CreatedAt == UpdatedAt.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// BaseAggregateRoot queues domain events raised while the aggregate is
// being changed. The application layer drains them after the write commits.
type BaseAggregateRoot struct {
	BaseEntity
	pending []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

func (a *BaseAggregateRoot) AddDomainEvent(e DomainEvent) {
	a.pending = append(a.pending, e)
}

// GetDomainEvents returns the queued events in the order they were raised.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
