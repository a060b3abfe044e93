package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// AggregateModel holds the columns every catalog table shares: identity,
// timestamps and the optimistic-lock version.
type AggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// FromAggregate copies the shared columns out of a domain aggregate
func (m *AggregateModel) FromAggregate(a shared.Aggregate) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// ToAggregate rebuilds the domain aggregate. Pending events are never stored.
func (m *AggregateModel) ToAggregate() shared.Aggregate {
	return shared.Aggregate{
		Entity: shared.Entity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version: m.Version,
	}
}
