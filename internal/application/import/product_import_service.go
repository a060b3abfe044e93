package importapp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	csvimport "github.com/snehagupta9582883065/recent-api/internal/infrastructure/import"
	"go.uber.org/zap"
)

// ColumnMapping names the CSV header read for each product field
type ColumnMapping struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	Price         string `json:"price"`
	PricePerCase  string `json:"price_per_case"`
	SKU           string `json:"sku"`
	Description   string `json:"description"`
	PackSize      string `json:"pack_size"`
	Unit          string `json:"unit"`
	StockQuantity string `json:"stock_quantity"`
}

// DefaultColumnMapping returns the headers of the standard product sheet
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Name:          "Product Name",
		Category:      "Category",
		Brand:         "Brand",
		Price:         "Price",
		PricePerCase:  "Price Per Case",
		SKU:           "SKU",
		Description:   "Description",
		PackSize:      "Pack Size",
		Unit:          "Unit",
		StockQuantity: "Stock Quantity",
	}
}

// WithDefaults fills every blank field from DefaultColumnMapping
func (m ColumnMapping) WithDefaults() ColumnMapping {
	d := DefaultColumnMapping()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.Name, d.Name)
	fill(&m.Category, d.Category)
	fill(&m.Brand, d.Brand)
	fill(&m.Price, d.Price)
	fill(&m.PricePerCase, d.PricePerCase)
	fill(&m.SKU, d.SKU)
	fill(&m.Description, d.Description)
	fill(&m.PackSize, d.PackSize)
	fill(&m.Unit, d.Unit)
	fill(&m.StockQuantity, d.StockQuantity)
	return m
}

// fields lists mapped field names with their headers, in a stable order
func (m ColumnMapping) fields() [][2]string {
	return [][2]string{
		{"name", m.Name},
		{"category", m.Category},
		{"brand", m.Brand},
		{"price", m.Price},
		{"price_per_case", m.PricePerCase},
		{"sku", m.SKU},
		{"description", m.Description},
		{"pack_size", m.PackSize},
		{"unit", m.Unit},
		{"stock_quantity", m.StockQuantity},
	}
}

// rules returns the validation rules for the mapped headers
func (m ColumnMapping) rules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field(m.Name).Required().Build(),
		csvimport.Field(m.Category).Required().Build(),
		csvimport.Field(m.Brand).Required().Build(),
		csvimport.Field(m.Price).Decimal().NonNegative().Build(),
		csvimport.Field(m.PricePerCase).Decimal().NonNegative().Build(),
		csvimport.Field(m.StockQuantity).Int().NonNegative().Build(),
	}
}

// ProductImportResult represents the result of a product import operation
type ProductImportResult struct {
	TotalRows         int                  `json:"total_rows"`
	Created           int                  `json:"created"`
	Existing          int                  `json:"existing"`
	CategoriesCreated int                  `json:"categories_created"`
	Errors            int                  `json:"errors"`
	ErrorDetails      []csvimport.RowError `json:"error_details,omitempty"`
}

// ProductImportService creates products from a CSV file
type ProductImportService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	products     ProductCreator
	categories   CategoryCreator
	maxRows      int
	logger       *zap.Logger
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	products ProductCreator,
	categories CategoryCreator,
	maxRows int,
	logger *zap.Logger,
) *ProductImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImportService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		products:     products,
		categories:   categories,
		maxRows:      maxRows,
		logger:       logger,
	}
}

// Import creates a product for every valid row that does not match an
// existing product by SKU or by name. Unknown category
// labels become new root categories.
func (s *ProductImportService) Import(ctx context.Context, data []byte, mapping ColumnMapping) (*ProductImportResult, error) {
	mapping = mapping.WithDefaults()

	parser, rows, err := readFile(data, s.maxRows)
	if err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders([]string{mapping.Name, mapping.Category, mapping.Brand}); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrInvalidFile, strings.Join(missing, ", "))
	}

	result := &ProductImportResult{TotalRows: len(rows)}
	validator := csvimport.NewFieldValidator(mapping.rules(), MaxErrorDetails)
	details := validator.Errors()
	resolver := newCategoryResolver(s.categoryRepo, s.categories)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !validator.ValidateRow(row) {
			result.Errors++
			continue
		}
		if err := s.importRow(ctx, row, mapping, resolver, result, details); err != nil {
			return nil, err
		}
	}

	result.ErrorDetails = details.Errors()
	s.logger.Info("product import finished",
		zap.Int("rows", result.TotalRows),
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("errors", result.Errors),
	)
	return result, nil
}

// importRow handles one validated row. Row-level problems are recorded in
// details; only infrastructure failures are returned.
func (s *ProductImportService) importRow(
	ctx context.Context,
	row *csvimport.Row,
	mapping ColumnMapping,
	resolver *categoryResolver,
	result *ProductImportResult,
	details *csvimport.ErrorCollection,
) error {
	name := row.Get(mapping.Name)
	sku := row.Get(mapping.SKU)

	exists, err := s.exists(ctx, sku, name)
	if err != nil {
		return err
	}
	if exists {
		result.Existing++
		return nil
	}

	label := row.Get(mapping.Category)
	categoryID, created, err := resolver.resolve(ctx, label)
	if err != nil {
		if _, ok := shared.AsDomainError(err); !ok {
			return fmt.Errorf("failed to resolve category %q: %w", label, err)
		}
		s.rowFailed(result, details, row, mapping.Category, err.Error())
		return nil
	}
	if created {
		result.CategoriesCreated++
	}

	req := catalogapp.CreateProductRequest{
		Name:          name,
		SKU:           sku,
		Brand:         row.Get(mapping.Brand),
		Description:   row.Get(mapping.Description),
		Price:         parseDecimal(row.Get(mapping.Price)),
		PackSize:      row.Get(mapping.PackSize),
		Unit:          row.Get(mapping.Unit),
		StockQuantity: parseInt(row.Get(mapping.StockQuantity)),
		CategoryID:    &categoryID,
	}
	if v := row.Get(mapping.PricePerCase); v != "" {
		perCase := parseDecimal(v)
		req.PricePerCase = &perCase
	}

	if _, err := s.products.Create(ctx, req); err != nil {
		if _, ok := shared.AsDomainError(err); !ok {
			return fmt.Errorf("failed to create product on row %d: %w", row.LineNumber, err)
		}
		s.rowFailed(result, details, row, "", err.Error())
		return nil
	}
	result.Created++
	return nil
}

func (s *ProductImportService) exists(ctx context.Context, sku, name string) (bool, error) {
	if sku != "" {
		_, err := s.productRepo.FindBySKU(ctx, sku)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return false, fmt.Errorf("failed to check existing product: %w", err)
		}
	}
	_, err := s.productRepo.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return false, fmt.Errorf("failed to check existing product: %w", err)
	}
	return false, nil
}

func (s *ProductImportService) rowFailed(
	result *ProductImportResult,
	details *csvimport.ErrorCollection,
	row *csvimport.Row,
	column, message string,
) {
	result.Errors++
	details.Add(csvimport.NewRowError(row.LineNumber, column, csvimport.ErrCodeImportValidation, message))
}

// parseDecimal reads a value the validator has already accepted; blank is zero
func parseDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
