package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	p.events = nil
	p.mu.Unlock()
}

// MockImageReleaser is a mock implementation of ImageReleaser
type MockImageReleaser struct {
	mock.Mock
}

func (m *MockImageReleaser) Release(ctx context.Context, publicID string) {
	m.Called(ctx, publicID)
}

type catalogFixture struct {
	db         *gorm.DB
	categories *persistence.GormCategoryRepository
	products   *persistence.GormProductRepository
	publisher  *recordingPublisher
	service    *CategoryService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newCatalogFixture(t *testing.T, cfg CategoryServiceConfig) *catalogFixture {
	t.Helper()

	db := newTestDB(t)
	f := &catalogFixture{
		db:         db,
		categories: persistence.NewGormCategoryRepository(db),
		products:   persistence.NewGormProductRepository(db),
		publisher:  &recordingPublisher{},
	}
	f.service = NewCategoryService(f.categories, persistence.NewGormTransactionScope(db), cfg).
		WithEventPublisher(f.publisher)
	return f
}

func (f *catalogFixture) create(t *testing.T, name string, parent *CategoryResponse) *CategoryResponse {
	t.Helper()
	req := CreateCategoryRequest{Name: name}
	if parent != nil {
		id := parent.ID
		req.ParentID = &id
	}
	c, err := f.service.Create(context.Background(), req)
	require.NoError(t, err)
	return c
}

func (f *catalogFixture) load(t *testing.T, id uuid.UUID) *catalog.Category {
	t.Helper()
	c, err := f.categories.FindByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

// assertMaterialized checks level and path of every stored category against its parent
func (f *catalogFixture) assertMaterialized(t *testing.T) {
	t.Helper()
	all, err := f.categories.FindAllOrdered(context.Background())
	require.NoError(t, err)

	byID := make(map[uuid.UUID]catalog.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	for _, c := range all {
		if c.ParentID == nil {
			require.Equal(t, 0, c.Level, c.Name)
			require.Equal(t, "", c.Path, c.Name)
			continue
		}
		parent, ok := byID[*c.ParentID]
		require.True(t, ok, "parent of %s missing", c.Name)
		require.Equal(t, parent.Level+1, c.Level, c.Name)
		require.Equal(t, catalog.ChildPrefix(&parent), c.Path, c.Name)
	}
}
