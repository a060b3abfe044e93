package catalog

import (
	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// EventTypeProductCategoryChanged is raised whenever a product enters or leaves a category
const EventTypeProductCategoryChanged = "ProductCategoryChanged"

// ProductCategoryChangedEvent carries the category a product left and the one it joined.
// Either side may be nil.
type ProductCategoryChangedEvent struct {
	shared.EventBase
	ProductID      uuid.UUID  `json:"product_id"`
	FromCategoryID *uuid.UUID `json:"from_category_id,omitempty"`
	ToCategoryID   *uuid.UUID `json:"to_category_id,omitempty"`
}

// NewProductCategoryChangedEvent creates a new ProductCategoryChangedEvent
func NewProductCategoryChangedEvent(product *Product, from *uuid.UUID) *ProductCategoryChangedEvent {
	return &ProductCategoryChangedEvent{
		EventBase:      shared.NewEventBase(EventTypeProductCategoryChanged, AggregateTypeProduct, product.ID),
		ProductID:      product.ID,
		FromCategoryID: from,
		ToCategoryID:   product.CategoryID,
	}
}
