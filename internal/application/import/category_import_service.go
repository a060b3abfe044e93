package importapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	csvimport "github.com/snehagupta9582883065/recent-api/internal/infrastructure/import"
	"go.uber.org/zap"
)

// CategoryImportItem reports what happened to one category name
type CategoryImportItem struct {
	Name   string `json:"name"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
}

// Category import item statuses
const (
	StatusCreated  = "created"
	StatusExisting = "existing"
	StatusFailed   = "failed"
)

// CategoryImportResult represents the result of a category import
type CategoryImportResult struct {
	Created      int                  `json:"created"`
	Existing     int                  `json:"existing"`
	Errors       int                  `json:"errors"`
	Categories   []CategoryImportItem `json:"categories"`
	ErrorDetails []csvimport.RowError `json:"error_details,omitempty"`
}

// CategoryImportService creates root categories from one column of a CSV file
type CategoryImportService struct {
	categoryRepo catalog.CategoryRepository
	creator      CategoryCreator
	maxRows      int
	logger       *zap.Logger
}

// NewCategoryImportService creates a new CategoryImportService
func NewCategoryImportService(
	categoryRepo catalog.CategoryRepository,
	creator CategoryCreator,
	maxRows int,
	logger *zap.Logger,
) *CategoryImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryImportService{
		categoryRepo: categoryRepo,
		creator:      creator,
		maxRows:      maxRows,
		logger:       logger,
	}
}

// Import creates an active root category for every distinct value of column
// that is not already stored under that exact name
func (s *CategoryImportService) Import(ctx context.Context, data []byte, column string) (*CategoryImportResult, error) {
	column = strings.TrimSpace(column)
	if column == "" {
		column = DefaultCategoryColumn
	}

	parser, rows, err := readFile(data, s.maxRows)
	if err != nil {
		return nil, err
	}
	if !parser.HasHeader(column) {
		return nil, fmt.Errorf("%w: column %q not found", ErrInvalidFile, column)
	}

	result := &CategoryImportResult{Categories: make([]CategoryImportItem, 0)}
	details := csvimport.NewErrorCollection(MaxErrorDetails)
	firstRow := make(map[string]int)
	for _, row := range rows {
		if v := row.Get(column); v != "" {
			if _, ok := firstRow[v]; !ok {
				firstRow[v] = row.LineNumber
			}
		}
	}

	for _, name := range uniqueValues(rows, column) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		existing, err := s.categoryRepo.FindByName(ctx, name)
		if err == nil {
			result.Existing++
			result.Categories = append(result.Categories, CategoryImportItem{
				Name: name, ID: existing.ID.String(), Status: StatusExisting,
			})
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
		}

		created, err := s.creator.Create(ctx, categoryRequest(name))
		if err != nil {
			if _, ok := shared.AsDomainError(err); !ok {
				return nil, fmt.Errorf("failed to create category %q: %w", name, err)
			}
			result.Errors++
			result.Categories = append(result.Categories, CategoryImportItem{Name: name, Status: StatusFailed})
			e := csvimport.NewRowError(firstRow[name], column, csvimport.ErrCodeImportValidation, err.Error())
			e.Value = name
			details.Add(e)
			continue
		}
		result.Created++
		result.Categories = append(result.Categories, CategoryImportItem{
			Name: name, ID: created.ID.String(), Status: StatusCreated,
		})
	}

	result.ErrorDetails = details.Errors()
	s.logger.Info("category import finished",
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("errors", result.Errors),
	)
	return result, nil
}
