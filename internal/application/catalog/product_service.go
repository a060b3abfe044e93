package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	publisher    shared.EventPublisher
	images       ImageReleaser
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       zap.NewNop(),
	}
}

// WithEventPublisher sets the publisher for product events
func (s *ProductService) WithEventPublisher(p shared.EventPublisher) *ProductService {
	s.publisher = p
	return s
}

// WithImageReleaser sets where replaced images are released
func (s *ProductService) WithImageReleaser(r ImageReleaser) *ProductService {
	s.images = r
	return s
}

// WithLogger sets the logger
func (s *ProductService) WithLogger(l *zap.Logger) *ProductService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureSKUFree(ctx, req.SKU, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Brand, req.Price, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Brand, req.Description); err != nil {
		return nil, err
	}
	product.SetSKU(req.SKU)
	product.SetPackaging(req.PackSize, req.Unit)

	pricePerCase := decimal.Zero
	if req.PricePerCase != nil {
		pricePerCase = *req.PricePerCase
	}
	if err := product.SetPrices(req.Price, pricePerCase); err != nil {
		return nil, err
	}
	if err := product.SetStock(req.StockQuantity); err != nil {
		return nil, err
	}
	product.SetFlags(req.IsFeatured, req.IsOnOffer)
	if req.Image != "" {
		product.SetImage(req.Image, req.ImagePublicID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if c := strings.TrimSpace(filter.CategoryID); c != "" {
		categoryID, err := uuid.Parse(c)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "category_id must be a UUID")
		}
		if filter.IncludeSubcategories {
			ids, err := s.subtreeIDs(ctx, categoryID)
			if err != nil {
				return nil, 0, err
			}
			domainFilter.Filters["category_ids"] = ids
		} else {
			domainFilter.Filters["category_id"] = categoryID
		}
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.IsFeatured != nil {
		domainFilter.Filters["is_featured"] = *filter.IsFeatured
	}
	if filter.IsOnOffer != nil {
		domainFilter.Filters["is_on_offer"] = *filter.IsOnOffer
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// subtreeIDs resolves a category and every descendant by path prefix
func (s *ProductService) subtreeIDs(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	descendants, err := s.categoryRepo.FindByPathPrefix(ctx, catalog.ChildPrefix(category), nil, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(descendants)+1)
	ids = append(ids, category.ID)
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Brand != nil || req.Description != nil {
		name, brand, description := product.Name, product.Brand, product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Brand != nil {
			brand = *req.Brand
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, brand, description); err != nil {
			return nil, err
		}
	}

	if req.SKU != nil && strings.TrimSpace(*req.SKU) != product.SKU {
		if err := s.ensureSKUFree(ctx, *req.SKU, product.ID); err != nil {
			return nil, err
		}
		product.SetSKU(*req.SKU)
	}

	if req.PackSize != nil || req.Unit != nil {
		packSize, unit := product.PackSize, product.Unit
		if req.PackSize != nil {
			packSize = *req.PackSize
		}
		if req.Unit != nil {
			unit = *req.Unit
		}
		product.SetPackaging(packSize, unit)
	}

	if req.Price != nil || req.PricePerCase != nil {
		price, pricePerCase := product.Price, product.PricePerCase
		if req.Price != nil {
			price = *req.Price
		}
		if req.PricePerCase != nil {
			pricePerCase = *req.PricePerCase
		}
		if err := product.SetPrices(price, pricePerCase); err != nil {
			return nil, err
		}
	}

	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if req.IsFeatured != nil || req.IsOnOffer != nil {
		featured, onOffer := product.IsFeatured, product.IsOnOffer
		if req.IsFeatured != nil {
			featured = *req.IsFeatured
		}
		if req.IsOnOffer != nil {
			onOffer = *req.IsOnOffer
		}
		product.SetFlags(featured, onOffer)
	}

	released := ""
	if req.Image != nil {
		publicID := ""
		if req.ImagePublicID != nil {
			publicID = *req.ImagePublicID
		} else if *req.Image == product.Image {
			publicID = product.ImagePublicID
		}
		released = product.SetImage(*req.Image, publicID)
	}

	if req.CategoryID.Set {
		if err := s.ensureCategory(ctx, req.CategoryID.Value); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID.Value)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)
	s.release(ctx, released)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product and releases its image
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	product.MarkDeleted()
	s.publish(ctx, product)
	s.release(ctx, product.ImagePublicID)
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return catalog.NewCategoryNotFoundError(*categoryID)
		}
		return err
	}
	return nil
}

func (s *ProductService) ensureSKUFree(ctx context.Context, sku string, self uuid.UUID) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil
	}
	existing, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Product with this SKU already exists")
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	events := product.PendingEvents()
	product.ClearEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *ProductService) release(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	s.images.Release(ctx, publicID)
}
