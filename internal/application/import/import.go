package importapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	csvimport "github.com/snehagupta9582883065/recent-api/internal/infrastructure/import"
)

// ImportType selects what a file is imported as
type ImportType string

const (
	ImportTypeCategories ImportType = "categories"
	ImportTypeProducts   ImportType = "products"
)

// PreviewRows is how many mapped rows a preview returns
const PreviewRows = 10

// MaxErrorDetails is how many row errors an import result carries
const MaxErrorDetails = 10

// DefaultCategoryColumn is the column read by the category import
const DefaultCategoryColumn = "Category"

// ErrInvalidFile wraps every failure to read an uploaded file
var ErrInvalidFile = shared.NewDomainError("INVALID_FILE", "Invalid import file")

// CategoryCreator creates categories through the catalog service
type CategoryCreator interface {
	Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
}

// ProductCreator creates products through the catalog service
type ProductCreator interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
}

// ParseImportType validates an import type name
func ParseImportType(s string) (ImportType, error) {
	switch t := ImportType(strings.ToLower(strings.TrimSpace(s))); t {
	case ImportTypeCategories, ImportTypeProducts:
		return t, nil
	}
	return "", shared.NewDomainError(shared.ErrInvalidInput.Code, "type must be categories or products")
}

// readFile parses the header and every non-blank data row of a CSV file or of
// the first sheet of an XLSX workbook
func readFile(data []byte, maxRows int) (*csvimport.CSVParser, []*csvimport.Row, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, csvimport.ErrEmptyFile)
	}

	var opts []csvimport.ParserOption
	if maxRows > 0 {
		opts = append(opts, csvimport.WithMaxRows(maxRows))
	}
	parser, err := csvimport.ParseFromBytes(data, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer parser.Close()
	if err := parser.ParseHeader(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFile, csvimport.ErrNoDataRows)
	}
	return parser, rows, nil
}

// uniqueValues returns the distinct non-empty values of column in file order
func uniqueValues(rows []*csvimport.Row, column string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range rows {
		v := row.Get(column)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// categoryResolver maps free-form category labels to ids, creating
// missing ones as active roots. Lookups are remembered for the whole import.
type categoryResolver struct {
	repo    catalog.CategoryRepository
	creator CategoryCreator
	known   map[string]uuid.UUID
}

func newCategoryResolver(repo catalog.CategoryRepository, creator CategoryCreator) *categoryResolver {
	return &categoryResolver{repo: repo, creator: creator, known: make(map[string]uuid.UUID)}
}

// lookup finds an existing category by exact name, then by derived slug
func (r *categoryResolver) lookup(ctx context.Context, name string) (uuid.UUID, bool, error) {
	if id, ok := r.known[name]; ok {
		return id, true, nil
	}

	category, err := r.repo.FindByName(ctx, name)
	if err == nil {
		r.known[name] = category.ID
		return category.ID, true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, false, err
	}

	slug := catalog.DeriveSlug(name)
	if slug == "" {
		return uuid.Nil, false, nil
	}
	category, err = r.repo.FindBySlug(ctx, slug)
	if err == nil {
		r.known[name] = category.ID
		return category.ID, true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, false, err
	}
	return uuid.Nil, false, nil
}

// resolve returns the id for name, creating the category when needed
func (r *categoryResolver) resolve(ctx context.Context, name string) (uuid.UUID, bool, error) {
	id, found, err := r.lookup(ctx, name)
	if err != nil || found {
		return id, false, err
	}
	created, err := r.creator.Create(ctx, categoryRequest(name))
	if err != nil {
		return uuid.Nil, false, err
	}
	r.known[name] = created.ID
	return created.ID, true, nil
}

func categoryRequest(name string) catalogapp.CreateCategoryRequest {
	return catalogapp.CreateCategoryRequest{
		Name:        name,
		Description: "Imported category: " + name,
	}
}
