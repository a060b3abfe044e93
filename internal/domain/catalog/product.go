package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
)

// Product defaults applied when the caller leaves them blank
const (
	DefaultPackSize = "1 unit"
	DefaultUnit     = "ea"
)

// Product represents a sellable item in the catalog
type Product struct {
	shared.Aggregate
	Name          string
	SKU           string
	Brand         string
	Description   string
	Price         decimal.Decimal
	PricePerCase  decimal.Decimal
	PackSize      string
	Unit          string
	StockQuantity int
	InStock       bool
	IsFeatured    bool
	IsOnOffer     bool
	Image         string
	ImagePublicID string
	CategoryID    *uuid.UUID
}

// NewProduct creates a new product, optionally assigned to a category
func NewProduct(name, brand string, price decimal.Decimal, categoryID *uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	product := &Product{
		Aggregate:    shared.NewAggregate(),
		Name:         strings.TrimSpace(name),
		Brand:        strings.TrimSpace(brand),
		Price:        price,
		PricePerCase: price,
		PackSize:     DefaultPackSize,
		Unit:         DefaultUnit,
		InStock:      true,
		CategoryID:   categoryID,
	}

	if categoryID != nil {
		product.Record(NewProductCategoryChangedEvent(product, nil))
	}

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, brand, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Brand = strings.TrimSpace(brand)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.BumpVersion()

	return nil
}

// SetSKU sets the stock keeping unit
func (p *Product) SetSKU(sku string) {
	p.SKU = strings.TrimSpace(sku)
	p.Touch()
}

// SetPackaging sets pack size and unit, falling back to defaults when blank
func (p *Product) SetPackaging(packSize, unit string) {
	p.PackSize = strings.TrimSpace(packSize)
	if p.PackSize == "" {
		p.PackSize = DefaultPackSize
	}
	p.Unit = strings.TrimSpace(unit)
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	p.Touch()
}

// SetPrices sets unit and case prices; a zero case price follows the unit price
func (p *Product) SetPrices(price, pricePerCase decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	if err := validatePrice(pricePerCase); err != nil {
		return err
	}
	if pricePerCase.IsZero() {
		pricePerCase = price
	}
	p.Price = price
	p.PricePerCase = pricePerCase
	p.Touch()
	return nil
}

// SetStock sets the stock quantity and derives the in-stock flag
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError(CodeInvalidQuantity, "Stock quantity cannot be negative")
	}
	p.StockQuantity = quantity
	p.InStock = quantity > 0
	p.Touch()
	return nil
}

// SetFlags sets the merchandising flags
func (p *Product) SetFlags(featured, onOffer bool) {
	p.IsFeatured = featured
	p.IsOnOffer = onOffer
	p.Touch()
}

// SetImage replaces the image and returns the previous public id to release
func (p *Product) SetImage(url, publicID string) string {
	previous := p.ImagePublicID
	p.Image = url
	p.ImagePublicID = publicID
	p.Touch()
	if previous == publicID {
		return ""
	}
	return previous
}

// SetCategory moves the product to another category, or uncategorizes it with nil
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	if sameCategory(p.CategoryID, categoryID) {
		return
	}
	previous := p.CategoryID
	p.CategoryID = categoryID
	p.Touch()
	p.BumpVersion()

	p.Record(NewProductCategoryChangedEvent(p, previous))
}

// MarkDeleted records the removal so the category's product count is released
func (p *Product) MarkDeleted() {
	if p.CategoryID == nil {
		return
	}
	previous := p.CategoryID
	p.CategoryID = nil
	p.Record(NewProductCategoryChangedEvent(p, previous))
}

// HasCategory reports whether the product is assigned to a category
func (p *Product) HasCategory() bool {
	return p.CategoryID != nil
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(CodeInvalidName, "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(CodeInvalidName, "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError(CodeInvalidPrice, "Price cannot be negative")
	}
	return nil
}
