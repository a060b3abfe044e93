package catalog

import (
	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCategory = "Category"

// Event type constants
const (
	EventTypeCategoryCreated       = "CategoryCreated"
	EventTypeCategoryUpdated       = "CategoryUpdated"
	EventTypeCategoryMoved         = "CategoryMoved"
	EventTypeCategoryStatusChanged = "CategoryStatusChanged"
	EventTypeCategoryDeleted       = "CategoryDeleted"
)

// CategoryEventTypes lists every event that changes the shape or content of the tree
var CategoryEventTypes = []string{
	EventTypeCategoryCreated,
	EventTypeCategoryUpdated,
	EventTypeCategoryMoved,
	EventTypeCategoryStatusChanged,
	EventTypeCategoryDeleted,
}

// CategoryCreatedEvent is published when a new category is created
type CategoryCreatedEvent struct {
	shared.EventBase
	CategoryID uuid.UUID  `json:"category_id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Level      int        `json:"level"`
}

// NewCategoryCreatedEvent creates a new CategoryCreatedEvent
func NewCategoryCreatedEvent(category *Category) *CategoryCreatedEvent {
	return &CategoryCreatedEvent{
		EventBase:  shared.NewEventBase(EventTypeCategoryCreated, AggregateTypeCategory, category.ID),
		CategoryID: category.ID,
		Name:       category.Name,
		Slug:       category.Slug,
		ParentID:   category.ParentID,
		Level:      category.Level,
	}
}

// CategoryUpdatedEvent is published when a category is renamed
type CategoryUpdatedEvent struct {
	shared.EventBase
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
}

// NewCategoryUpdatedEvent creates a new CategoryUpdatedEvent
func NewCategoryUpdatedEvent(category *Category) *CategoryUpdatedEvent {
	return &CategoryUpdatedEvent{
		EventBase:  shared.NewEventBase(EventTypeCategoryUpdated, AggregateTypeCategory, category.ID),
		CategoryID: category.ID,
		Name:       category.Name,
		Slug:       category.Slug,
	}
}

// CategoryMovedEvent is published when a category gets a new parent
type CategoryMovedEvent struct {
	shared.EventBase
	CategoryID  uuid.UUID  `json:"category_id"`
	OldParentID *uuid.UUID `json:"old_parent_id,omitempty"`
	NewParentID *uuid.UUID `json:"new_parent_id,omitempty"`
	OldLevel    int        `json:"old_level"`
	NewLevel    int        `json:"new_level"`
}

// NewCategoryMovedEvent creates a new CategoryMovedEvent
func NewCategoryMovedEvent(category *Category, oldParentID *uuid.UUID, oldLevel int) *CategoryMovedEvent {
	return &CategoryMovedEvent{
		EventBase:   shared.NewEventBase(EventTypeCategoryMoved, AggregateTypeCategory, category.ID),
		CategoryID:  category.ID,
		OldParentID: oldParentID,
		NewParentID: category.ParentID,
		OldLevel:    oldLevel,
		NewLevel:    category.Level,
	}
}

// CategoryStatusChangedEvent is published when a category is activated or deactivated
type CategoryStatusChangedEvent struct {
	shared.EventBase
	CategoryID uuid.UUID `json:"category_id"`
	IsActive   bool      `json:"is_active"`
}

// NewCategoryStatusChangedEvent creates a new CategoryStatusChangedEvent
func NewCategoryStatusChangedEvent(category *Category) *CategoryStatusChangedEvent {
	return &CategoryStatusChangedEvent{
		EventBase:  shared.NewEventBase(EventTypeCategoryStatusChanged, AggregateTypeCategory, category.ID),
		CategoryID: category.ID,
		IsActive:   category.IsActive,
	}
}

// CategoryDeletedEvent is published when a category is removed
type CategoryDeletedEvent struct {
	shared.EventBase
	CategoryID uuid.UUID  `json:"category_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Policy     string     `json:"policy"`
}

// NewCategoryDeletedEvent creates a new CategoryDeletedEvent
func NewCategoryDeletedEvent(category *Category, policy DeletePolicy) *CategoryDeletedEvent {
	return &CategoryDeletedEvent{
		EventBase:  shared.NewEventBase(EventTypeCategoryDeleted, AggregateTypeCategory, category.ID),
		CategoryID: category.ID,
		ParentID:   category.ParentID,
		Policy:     string(policy),
	}
}
