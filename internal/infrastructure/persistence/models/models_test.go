package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "categories", CategoryModel{}.TableName())
	assert.Equal(t, "products", ProductModel{}.TableName())
	assert.Equal(t, "banners", BannerModel{}.TableName())
}

func TestCategoryModel_RoundTrip(t *testing.T) {
	root, err := catalog.NewCategory("Beverages", nil)
	require.NoError(t, err)
	child, err := catalog.NewCategory("Soft Drinks", root)
	require.NoError(t, err)
	child.ProductCount = 4
	child.SetDisplayOrder(2)

	model := CategoryModelFromDomain(child)
	assert.Equal(t, child.ID, model.ID)
	assert.Equal(t, "soft-drinks", model.Slug)
	assert.Equal(t, "beverages", model.Path)
	assert.Equal(t, 1, model.Level)
	require.NotNil(t, model.ParentID)
	assert.Equal(t, root.ID, *model.ParentID)

	back := model.ToDomain()
	assert.Equal(t, child.ID, back.ID)
	assert.Equal(t, child.Name, back.Name)
	assert.Equal(t, child.Path, back.Path)
	assert.Equal(t, child.Level, back.Level)
	assert.Equal(t, 4, back.ProductCount)
	assert.Equal(t, 2, back.DisplayOrder)
	assert.Equal(t, child.Version, back.Version)
	assert.Empty(t, back.PendingEvents())
}

func TestProductModel_ToDomain(t *testing.T) {
	categoryID := uuid.New()
	now := time.Now()

	model := &ProductModel{
		AggregateModel: AggregateModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   3,
		},
		Name:          "Cola 330ml",
		SKU:           "COLA-330",
		Brand:         "Fizz",
		Price:         decimal.NewFromFloat(1.25),
		PricePerCase:  decimal.NewFromFloat(28.5),
		PackSize:      "24 x 330ml",
		Unit:          "case",
		StockQuantity: 12,
		InStock:       true,
		CategoryID:    &categoryID,
	}

	p := model.ToDomain()
	assert.Equal(t, model.ID, p.ID)
	assert.Equal(t, 3, p.Version)
	assert.Equal(t, "COLA-330", p.SKU)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(1.25)))
	assert.Equal(t, &categoryID, p.CategoryID)
	assert.True(t, p.InStock)
}

func TestBannerModel_FromDomainStoresUTC(t *testing.T) {
	b, err := marketing.NewBanner(marketing.BannerContent{Title: "Summer"}, "https://cdn/x.jpg", "banners/x.jpg")
	require.NoError(t, err)

	loc := time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2026, 6, 1, 10, 0, 0, 0, loc)
	end := start.Add(48 * time.Hour)
	require.NoError(t, b.Schedule(&start, &end))

	model := BannerModelFromDomain(b)
	require.NotNil(t, model.StartDate)
	assert.Equal(t, time.UTC, model.StartDate.Location())
	assert.True(t, model.StartDate.Equal(start))
	assert.Equal(t, "Summer", model.ToDomain().Title)
}

func TestAllModels(t *testing.T) {
	assert.Len(t, AllModels(), 3)
}
