//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
)

// newPostgresTestDB starts a disposable PostgreSQL container with the embedded schema applied
func newPostgresTestDB(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := NewDatabaseFromDialector(gormpostgres.Open(dsn), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	m, err := migration.New(sqlDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgres_CategoryTree(t *testing.T) {
	db := newPostgresTestDB(t)
	repo := NewGormCategoryRepository(db.DB)
	scope := NewGormTransactionScope(db.DB)
	ctx := context.Background()

	root := saveCategory(t, repo, "Electronics", nil)
	phones := saveCategory(t, repo, "Phones", root)
	saveCategory(t, repo, "Android", phones)

	t.Run("prefix query uses materialized path", func(t *testing.T) {
		descendants, err := repo.FindByPathPrefix(ctx, catalog.ChildPrefix(root), nil, 10)
		require.NoError(t, err)
		assert.Len(t, descendants, 2)
	})

	t.Run("row lock inside a transaction", func(t *testing.T) {
		err := scope.Execute(ctx, func(repos catalog.Repositories) error {
			locked, err := repos.Categories.FindByIDForUpdate(ctx, phones.ID)
			if err != nil {
				return err
			}
			_, err = locked.Rename("Mobile Phones")
			if err != nil {
				return err
			}
			return repos.Categories.Save(ctx, locked)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, phones.ID)
		require.NoError(t, err)
		assert.Equal(t, "mobile-phones", found.Slug)
	})

	t.Run("product count never goes negative", func(t *testing.T) {
		require.NoError(t, repo.AdjustProductCount(ctx, root.ID, -3))
		found, err := repo.FindByID(ctx, root.ID)
		require.NoError(t, err)
		assert.Zero(t, found.ProductCount)
	})
}
