package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// BannerStats summarizes banner visibility
type BannerStats struct {
	Total     int64 `json:"total_banners"`
	Active    int64 `json:"active_banners"`
	Inactive  int64 `json:"inactive_banners"`
	Scheduled int64 `json:"scheduled_banners"`
	Expired   int64 `json:"expired_banners"`
}

// BannerRepository defines the interface for banner persistence
type BannerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Banner, error)

	// FindAll supports Filters["is_active"] and a Search over title, subtitle, description and badge
	FindAll(ctx context.Context, filter shared.Filter) ([]Banner, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindLive returns active banners whose schedule contains now, ordered by display order
	FindLive(ctx context.Context, now time.Time) ([]Banner, error)

	CountAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context, now time.Time) (*BannerStats, error)

	Save(ctx context.Context, banner *Banner) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder assigns each id its index in ids as display order, atomically
	Reorder(ctx context.Context, ids []uuid.UUID) error
}
