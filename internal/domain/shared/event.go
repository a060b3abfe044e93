package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact about a catalog record, published after the change commits
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// EventBase implements DomainEvent and is embedded by concrete events
type EventBase struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewEventBase stamps a new event of eventType for the given record
func NewEventBase(eventType, aggType string, aggID uuid.UUID) EventBase {
	return EventBase{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *EventBase) EventID() uuid.UUID     { return e.ID }
func (e *EventBase) EventType() string      { return e.Type }
func (e *EventBase) OccurredAt() time.Time  { return e.Timestamp }
func (e *EventBase) AggregateID() uuid.UUID { return e.AggID }
func (e *EventBase) AggregateType() string  { return e.AggType }
