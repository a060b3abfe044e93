package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	AggregateModel
	Name          string     `gorm:"type:varchar(100);not null;index"`
	Slug          string     `gorm:"type:varchar(120);not null;index"`
	Description   string     `gorm:"type:text"`
	Image         string     `gorm:"type:varchar(500)"`
	ImagePublicID string     `gorm:"type:varchar(255)"`
	ParentID      *uuid.UUID `gorm:"type:uuid;index"`
	Level         int        `gorm:"not null;default:0;index"`
	Path          string     `gorm:"type:text;not null;default:'';index"`
	IsActive      bool       `gorm:"not null"`
	DisplayOrder  int        `gorm:"not null;default:0"`
	ProductCount  int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		Aggregate:     m.ToAggregate(),
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		Image:         m.Image,
		ImagePublicID: m.ImagePublicID,
		ParentID:      m.ParentID,
		Level:         m.Level,
		Path:          m.Path,
		IsActive:      m.IsActive,
		DisplayOrder:  m.DisplayOrder,
		ProductCount:  m.ProductCount,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromAggregate(c.Aggregate)
	m.Name = c.Name
	m.Slug = c.Slug
	m.Description = c.Description
	m.Image = c.Image
	m.ImagePublicID = c.ImagePublicID
	m.ParentID = c.ParentID
	m.Level = c.Level
	m.Path = c.Path
	m.IsActive = c.IsActive
	m.DisplayOrder = c.DisplayOrder
	m.ProductCount = c.ProductCount
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name          string          `gorm:"type:varchar(200);not null;index"`
	SKU           string          `gorm:"column:sku;type:varchar(100);index"`
	Brand         string          `gorm:"type:varchar(100)"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PricePerCase  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PackSize      string          `gorm:"type:varchar(50);not null;default:'1 unit'"`
	Unit          string          `gorm:"type:varchar(20);not null;default:'ea'"`
	StockQuantity int             `gorm:"not null;default:0"`
	InStock       bool            `gorm:"not null"`
	IsFeatured    bool            `gorm:"not null;default:false"`
	IsOnOffer     bool            `gorm:"not null;default:false"`
	Image         string          `gorm:"type:varchar(500)"`
	ImagePublicID string          `gorm:"type:varchar(255)"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		Aggregate:     m.ToAggregate(),
		Name:          m.Name,
		SKU:           m.SKU,
		Brand:         m.Brand,
		Description:   m.Description,
		Price:         m.Price,
		PricePerCase:  m.PricePerCase,
		PackSize:      m.PackSize,
		Unit:          m.Unit,
		StockQuantity: m.StockQuantity,
		InStock:       m.InStock,
		IsFeatured:    m.IsFeatured,
		IsOnOffer:     m.IsOnOffer,
		Image:         m.Image,
		ImagePublicID: m.ImagePublicID,
		CategoryID:    m.CategoryID,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromAggregate(p.Aggregate)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Brand = p.Brand
	m.Description = p.Description
	m.Price = p.Price
	m.PricePerCase = p.PricePerCase
	m.PackSize = p.PackSize
	m.Unit = p.Unit
	m.StockQuantity = p.StockQuantity
	m.InStock = p.InStock
	m.IsFeatured = p.IsFeatured
	m.IsOnOffer = p.IsOnOffer
	m.Image = p.Image
	m.ImagePublicID = p.ImagePublicID
	m.CategoryID = p.CategoryID
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
