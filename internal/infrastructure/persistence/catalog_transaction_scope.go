package persistence

import (
	"context"

	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormTransactionScope implements catalog.TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos catalog.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(catalog.Repositories{
			Categories: NewGormCategoryRepository(tx),
			Products:   NewGormProductRepository(tx),
		})
	})
}

// Ensure GormTransactionScope implements TransactionScope
var _ catalog.TransactionScope = (*GormTransactionScope)(nil)
