package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByIDForUpdate finds a category by ID and, on PostgreSQL, locks the row
// until the surrounding transaction ends
func (r *GormCategoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if IsPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(query)
}

// FindBySlug finds the shallowest category with the given slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("slug = ?", slug).Order("level ASC").Order("display_order ASC"))
}

// FindByName finds a category by exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	return r.first(r.db.WithContext(ctx).Where("name = ?", name).Order("level ASC"))
}

func (r *GormCategoryRepository) first(query *gorm.DB) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CategoryModel{}), filter)
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return toCategories(categoryModels), nil
}

// FindAllOrdered returns every category ordered by level then display order
func (r *GormCategoryRepository) FindAllOrdered(ctx context.Context) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Order("level ASC").
		Order("display_order ASC").
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return toCategories(categoryModels), nil
}

// FindChildren finds the direct children of parentID, or the roots when parentID is nil
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID *uuid.UUID) ([]catalog.Category, error) {
	query := r.db.WithContext(ctx)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var categoryModels []models.CategoryModel
	if err := query.
		Order("display_order ASC").
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return toCategories(categoryModels), nil
}

// FindByPathPrefix returns one page of the categories whose path is prefix or
// lies below it. Slugs never contain LIKE wildcards, so prefix is used as is.
func (r *GormCategoryRepository) FindByPathPrefix(ctx context.Context, prefix string, after *catalog.SubtreeCursor, limit int) ([]catalog.Category, error) {
	var categoryModels []models.CategoryModel
	query := r.db.WithContext(ctx).
		Where("(path = ? OR path LIKE ?)", prefix, prefix+catalog.PathSeparator+"%")
	if after != nil {
		query = query.Where(
			"(level > ? OR (level = ? AND (display_order > ? OR (display_order = ? AND id > ?))))",
			after.Level, after.Level, after.DisplayOrder, after.DisplayOrder, after.ID,
		)
	}
	query = query.
		Order("level ASC").
		Order("display_order ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return toCategories(categoryModels), nil
}

// categoryTreeLockKey identifies the advisory lock guarding tree reshapes
const categoryTreeLockKey int64 = 0x63617465676f7279

// LockTree takes a transaction-scoped advisory lock on PostgreSQL. SQLite
// already serializes writers, so there it is a no-op.
func (r *GormCategoryRepository) LockTree(ctx context.Context) error {
	if !IsPostgres(r.db) {
		return nil
	}
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", categoryTreeLockKey).Error
}

// HasChildren checks if a category has any children
func (r *GormCategoryRepository) HasChildren(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Where("parent_id = ?", categoryID).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CategoryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a category. The product count is owned by
// AdjustProductCount and never overwritten here.
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Omit("product_count").Save(model).Error
}

// Delete deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AdjustProductCount adds delta to the category's product count, clamping at zero
func (r *GormCategoryRepository) AdjustProductCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&models.CategoryModel{}).
		Where("id = ?", categoryID).
		UpdateColumn("product_count", gorm.Expr(
			"CASE WHEN product_count + ? < 0 THEN 0 ELSE product_count + ? END", delta, delta,
		)).Error
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if col, ok := categorySortColumns.order(filter); ok {
		query = query.Order(col)
	} else {
		query = query.Order("level ASC").Order("display_order ASC")
	}

	return query
}

func (r *GormCategoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(slug) LIKE ?)", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "parent_id":
			if value == nil {
				query = query.Where("parent_id IS NULL")
			} else {
				query = query.Where("parent_id = ?", value)
			}
		case "level":
			query = query.Where("level = ?", value)
		}
	}

	return query
}

func toCategories(categoryModels []models.CategoryModel) []catalog.Category {
	categories := make([]catalog.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = *categoryModels[i].ToDomain()
	}
	return categories
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
