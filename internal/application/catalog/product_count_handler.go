package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductCountHandler keeps Category.ProductCount in step with product
// assignments by applying +1/-1 for every ProductCategoryChanged event.
type ProductCountHandler struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductCountHandler creates a new handler for product category changes
func NewProductCountHandler(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ProductCountHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductCountHandler{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ProductCountHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductCategoryChanged}
}

// Handle processes a ProductCategoryChangedEvent
func (h *ProductCountHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*catalog.ProductCategoryChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventTypeProductCategoryChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			catalog.EventTypeProductCategoryChanged, event.EventType())
	}

	if err := h.adjust(ctx, changed.FromCategoryID, -1); err != nil {
		return err
	}
	return h.adjust(ctx, changed.ToCategoryID, 1)
}

func (h *ProductCountHandler) adjust(ctx context.Context, categoryID *uuid.UUID, delta int) error {
	if categoryID == nil {
		return nil
	}
	err := h.categoryRepo.AdjustProductCount(ctx, *categoryID, delta)
	if errors.Is(err, shared.ErrNotFound) {
		// category deleted in the meantime
		h.logger.Debug("skipping product count for missing category",
			zap.String("category_id", categoryID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("adjust product count of %s by %d: %w", categoryID, delta, err)
	}
	return nil
}

var _ shared.EventHandler = (*ProductCountHandler)(nil)
