package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries the identity and timestamps every stored record has
type Entity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntity returns an Entity with a fresh id, created and updated now
func NewEntity() Entity {
	now := time.Now()
	return Entity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch sets UpdatedAt to now
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now()
}
