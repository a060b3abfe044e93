package catalog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
)

// OptionalUUID distinguishes an absent JSON field from an explicit null.
// Set is true when the field was present; Value is nil for null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// SetUUID returns a present OptionalUUID; nil means "move to root"
func SetUUID(id *uuid.UUID) OptionalUUID {
	return OptionalUUID{Set: true, Value: id}
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=100"`
	ParentID      *uuid.UUID `json:"parent_id"`
	Description   string     `json:"description" binding:"max=2000"`
	Image         string     `json:"image" binding:"omitempty,max=1024"`
	ImagePublicID string     `json:"image_public_id" binding:"max=512"`
	DisplayOrder  int        `json:"display_order"`
	IsActive      *bool      `json:"is_active"`
}

// UpdateCategoryRequest represents a partial update; nil fields are left unchanged.
// ParentID is a reparent when present, and a move to the root when null.
type UpdateCategoryRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=1,max=100"`
	ParentID      OptionalUUID `json:"parent_id"`
	Description   *string      `json:"description" binding:"omitempty,max=2000"`
	Image         *string      `json:"image" binding:"omitempty,max=1024"`
	ImagePublicID *string      `json:"image_public_id" binding:"omitempty,max=512"`
	DisplayOrder  *int         `json:"display_order"`
	IsActive      *bool        `json:"is_active"`
}

// MoveCategoryRequest moves a category under ParentID, or to the root when nil
type MoveCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CategoryListFilter represents filter options for the category list.
// ParentID accepts a UUID or "root".
type CategoryListFilter struct {
	Search   string `form:"search"`
	ParentID string `form:"parent_id"`
	IsActive *bool  `form:"is_active"`
	Level    *int   `form:"level" binding:"omitempty,min=0"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	ImagePublicID string     `json:"image_public_id,omitempty"`
	ParentID      *uuid.UUID `json:"parent_id"`
	Level         int        `json:"level"`
	Path          string     `json:"path"`
	IsActive      bool       `json:"is_active"`
	DisplayOrder  int        `json:"display_order"`
	ProductCount  int        `json:"product_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CategoryTreeNode is one node of the nested category tree
type CategoryTreeNode struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Slug         string              `json:"slug"`
	Image        string              `json:"image,omitempty"`
	Level        int                 `json:"level"`
	Path         string              `json:"path"`
	IsActive     bool                `json:"is_active"`
	DisplayOrder int                 `json:"display_order"`
	ProductCount int                 `json:"product_count"`
	Children     []*CategoryTreeNode `json:"children"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		Image:         c.Image,
		ImagePublicID: c.ImagePublicID,
		ParentID:      c.ParentID,
		Level:         c.Level,
		Path:          c.Path,
		IsActive:      c.IsActive,
		DisplayOrder:  c.DisplayOrder,
		ProductCount:  c.ProductCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	SKU           string           `json:"sku" binding:"max=64"`
	Brand         string           `json:"brand" binding:"max=100"`
	Description   string           `json:"description" binding:"max=2000"`
	Price         decimal.Decimal  `json:"price"`
	PricePerCase  *decimal.Decimal `json:"price_per_case"`
	PackSize      string           `json:"pack_size" binding:"max=50"`
	Unit          string           `json:"unit" binding:"max=20"`
	StockQuantity int              `json:"stock_quantity" binding:"min=0"`
	IsFeatured    bool             `json:"is_featured"`
	IsOnOffer     bool             `json:"is_on_offer"`
	Image         string           `json:"image" binding:"omitempty,max=1024"`
	ImagePublicID string           `json:"image_public_id" binding:"max=512"`
	CategoryID    *uuid.UUID       `json:"category_id"`
}

// UpdateProductRequest represents a partial product update.
// CategoryID set to null uncategorizes the product.
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" binding:"omitempty,max=64"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	Description   *string          `json:"description" binding:"omitempty,max=2000"`
	Price         *decimal.Decimal `json:"price"`
	PricePerCase  *decimal.Decimal `json:"price_per_case"`
	PackSize      *string          `json:"pack_size" binding:"omitempty,max=50"`
	Unit          *string          `json:"unit" binding:"omitempty,max=20"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	IsFeatured    *bool            `json:"is_featured"`
	IsOnOffer     *bool            `json:"is_on_offer"`
	Image         *string          `json:"image" binding:"omitempty,max=1024"`
	ImagePublicID *string          `json:"image_public_id" binding:"omitempty,max=512"`
	CategoryID    OptionalUUID     `json:"category_id"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	// IncludeSubcategories widens CategoryID to its whole subtree
	IncludeSubcategories bool   `form:"include_subcategories"`
	Brand                string `form:"brand"`
	IsFeatured           *bool  `form:"is_featured"`
	IsOnOffer            *bool  `form:"is_on_offer"`
	InStock              *bool  `form:"in_stock"`
	Page                 int    `form:"page" binding:"omitempty,min=1"`
	PageSize             int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy              string `form:"order_by"`
	OrderDir             string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Brand         string          `json:"brand"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	PricePerCase  decimal.Decimal `json:"price_per_case"`
	PackSize      string          `json:"pack_size"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
	IsFeatured    bool            `json:"is_featured"`
	IsOnOffer     bool            `json:"is_on_offer"`
	Image         string          `json:"image"`
	ImagePublicID string          `json:"image_public_id,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Brand:         p.Brand,
		Description:   p.Description,
		Price:         p.Price,
		PricePerCase:  p.PricePerCase,
		PackSize:      p.PackSize,
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		InStock:       p.InStock,
		IsFeatured:    p.IsFeatured,
		IsOnOffer:     p.IsOnOffer,
		Image:         p.Image,
		ImagePublicID: p.ImagePublicID,
		CategoryID:    p.CategoryID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
