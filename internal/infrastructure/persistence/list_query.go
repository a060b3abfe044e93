package persistence

import (
	"strings"

	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a list endpoint may order by. Anything
// else in Filter.OrderBy is ignored so caller input never reaches SQL.
type sortColumns map[string]bool

var (
	categorySortColumns = sortColumns{
		"id": true, "created_at": true, "updated_at": true,
		"name": true, "slug": true, "level": true, "path": true,
		"display_order": true, "product_count": true,
	}
	productSortColumns = sortColumns{
		"id": true, "created_at": true, "updated_at": true,
		"name": true, "sku": true, "brand": true,
		"price": true, "price_per_case": true, "stock_quantity": true,
	}
	bannerSortColumns = sortColumns{
		"id": true, "created_at": true, "updated_at": true,
		"title": true, "display_order": true, "start_date": true, "end_date": true,
	}
)

// order resolves the filter's sort request. ok is false when OrderBy is empty
// or not whitelisted; the caller then applies its default order. Direction is
// ascending only when OrderDir says "asc".
func (cols sortColumns) order(f shared.Filter) (col clause.OrderByColumn, ok bool) {
	name := strings.TrimSpace(f.OrderBy)
	if !cols[name] {
		return clause.OrderByColumn{}, false
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: name},
		Desc:   !strings.EqualFold(strings.TrimSpace(f.OrderDir), "asc"),
	}, true
}

// containsPattern builds a case-insensitive LIKE pattern; pair it with LOWER(column)
func containsPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
