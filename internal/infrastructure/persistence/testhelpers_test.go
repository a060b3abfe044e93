package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory SQLite database with the catalog schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// saveCategory creates a category under parent and persists it
func saveCategory(t *testing.T, repo *GormCategoryRepository, name string, parent *catalog.Category) *catalog.Category {
	t.Helper()

	c, err := catalog.NewCategory(name, parent)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}
