package catalog

import (
	"context"

	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// TreeCacheInvalidator drops the cached category tree whenever the tree
// or a product count changes.
type TreeCacheInvalidator struct {
	cache  TreeCache
	logger *zap.Logger
}

// NewTreeCacheInvalidator creates a new invalidation handler
func NewTreeCacheInvalidator(cache TreeCache, logger *zap.Logger) *TreeCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeCacheInvalidator{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *TreeCacheInvalidator) EventTypes() []string {
	types := make([]string, 0, len(catalog.CategoryEventTypes)+1)
	types = append(types, catalog.CategoryEventTypes...)
	return append(types, catalog.EventTypeProductCategoryChanged)
}

// Handle deletes both tree cache entries
func (h *TreeCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Delete(ctx, TreeCacheKeyAll, TreeCacheKeyActive); err != nil {
		h.logger.Warn("failed to invalidate category tree cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*TreeCacheInvalidator)(nil)
