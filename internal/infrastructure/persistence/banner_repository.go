package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBannerRepository implements BannerRepository using GORM
type GormBannerRepository struct {
	db *gorm.DB
}

// NewGormBannerRepository creates a new GormBannerRepository
func NewGormBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// FindByID finds a banner by its ID
func (r *GormBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketing.Banner, error) {
	var model models.BannerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all banners matching the filter, ordered by display order then newest first
func (r *GormBannerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]marketing.Banner, error) {
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BannerModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if col, ok := bannerSortColumns.order(filter); ok {
		query = query.Order(col)
	} else {
		query = query.Order("display_order ASC").Order("created_at DESC")
	}

	var bannerModels []models.BannerModel
	if err := query.Find(&bannerModels).Error; err != nil {
		return nil, err
	}
	return toBanners(bannerModels), nil
}

// Count counts banners matching the filter
func (r *GormBannerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BannerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLive returns active banners whose schedule contains now
func (r *GormBannerRepository) FindLive(ctx context.Context, now time.Time) ([]marketing.Banner, error) {
	now = now.UTC()
	var bannerModels []models.BannerModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(start_date IS NULL OR start_date <= ?)", now).
		Where("(end_date IS NULL OR end_date >= ?)", now).
		Order("display_order ASC").
		Order("created_at DESC").
		Find(&bannerModels).Error; err != nil {
		return nil, err
	}
	return toBanners(bannerModels), nil
}

// CountAll counts every banner
func (r *GormBannerRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BannerModel{}).Count(&count).Error
	return count, err
}

// Stats summarizes banners by visibility at now
func (r *GormBannerRepository) Stats(ctx context.Context, now time.Time) (*marketing.BannerStats, error) {
	now = now.UTC()
	stats := &marketing.BannerStats{}
	counts := []struct {
		target *int64
		scope  func(*gorm.DB) *gorm.DB
	}{
		{&stats.Total, func(db *gorm.DB) *gorm.DB { return db }},
		{&stats.Active, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.Inactive, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", false) }},
		{&stats.Scheduled, func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND start_date > ?", true, now)
		}},
		{&stats.Expired, func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND end_date < ?", true, now)
		}},
	}

	for _, c := range counts {
		if err := r.db.WithContext(ctx).
			Model(&models.BannerModel{}).
			Scopes(c.scope).
			Count(c.target).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// Save creates or updates a banner
func (r *GormBannerRepository) Save(ctx context.Context, banner *marketing.Banner) error {
	return r.db.WithContext(ctx).Save(models.BannerModelFromDomain(banner)).Error
}

// Delete deletes a banner
func (r *GormBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BannerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Reorder assigns each banner its index in ids as display order.
// An unknown id rolls the whole reorder back.
func (r *GormBannerRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for i, id := range ids {
			result := tx.Model(&models.BannerModel{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"display_order": i,
					"updated_at":    now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

func (r *GormBannerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(
			"(LOWER(title) LIKE ? OR LOWER(subtitle) LIKE ? OR LOWER(description) LIKE ? OR LOWER(badge) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

func toBanners(bannerModels []models.BannerModel) []marketing.Banner {
	banners := make([]marketing.Banner, len(bannerModels))
	for i := range bannerModels {
		banners[i] = *bannerModels[i].ToDomain()
	}
	return banners
}

// Ensure GormBannerRepository implements BannerRepository
var _ marketing.BannerRepository = (*GormBannerRepository)(nil)
