package importapp

import (
	"fmt"

	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
)

// PreviewResult shows how a file would be read before importing it
type PreviewResult struct {
	Type      ImportType          `json:"type"`
	Columns   []string            `json:"columns"`
	TotalRows int                 `json:"total_rows"`
	Preview   []map[string]string `json:"preview"`
}

// Preview parses data and maps its first rows. For categories the preview
// lists the distinct names of column with their derived slugs; for products
// it lists rows keyed by field name through mapping.
func Preview(data []byte, kind ImportType, column string, mapping ColumnMapping, maxRows int) (*PreviewResult, error) {
	parser, rows, err := readFile(data, maxRows)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{
		Type:      kind,
		Columns:   parser.Headers(),
		TotalRows: len(rows),
		Preview:   make([]map[string]string, 0, PreviewRows),
	}

	switch kind {
	case ImportTypeCategories:
		if column == "" {
			column = DefaultCategoryColumn
		}
		if !parser.HasHeader(column) {
			return nil, fmt.Errorf("%w: column %q not found", ErrInvalidFile, column)
		}
		for _, name := range uniqueValues(rows, column) {
			if len(result.Preview) == PreviewRows {
				break
			}
			result.Preview = append(result.Preview, map[string]string{
				"name": name,
				"slug": catalog.DeriveSlug(name),
			})
		}

	case ImportTypeProducts:
		fields := mapping.WithDefaults().fields()
		for _, row := range rows {
			if len(result.Preview) == PreviewRows {
				break
			}
			mapped := make(map[string]string, len(fields))
			for _, f := range fields {
				mapped[f[0]] = row.Get(f[1])
			}
			result.Preview = append(result.Preview, mapped)
		}

	default:
		return nil, fmt.Errorf("unsupported import type %q", kind)
	}

	return result, nil
}
