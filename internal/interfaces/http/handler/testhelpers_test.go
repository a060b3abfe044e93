package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	importapp "github.com/snehagupta9582883065/recent-api/internal/application/import"
	marketingapp "github.com/snehagupta9582883065/recent-api/internal/application/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/application/media"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/persistence/models"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/storage"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiFixture wires real services over an in-memory SQLite database
type apiFixture struct {
	db         *gorm.DB
	engine     *gin.Engine
	categories *catalogapp.CategoryService
	products   *catalogapp.ProductService
	banners    *marketingapp.BannerService
	objects    *storage.MemoryObjectStorage
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

func newAPIFixture(t *testing.T, cfg catalogapp.CategoryServiceConfig) *apiFixture {
	t.Helper()

	db := newTestDB(t)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)

	f := &apiFixture{db: db, objects: storage.NewMemoryObjectStorage()}
	images := media.NewImageService(f.objects, 1024, nil)
	f.categories = catalogapp.NewCategoryService(categoryRepo, persistence.NewGormTransactionScope(db), cfg).
		WithImageReleaser(images)
	f.products = catalogapp.NewProductService(productRepo, categoryRepo).WithImageReleaser(images)
	f.banners = marketingapp.NewBannerService(persistence.NewGormBannerRepository(db)).WithImageReleaser(images)

	categoryImport := importapp.NewCategoryImportService(categoryRepo, f.categories, 100, nil)
	productImport := importapp.NewProductImportService(productRepo, categoryRepo, f.products, f.categories, 100, nil)

	categoryHandler := NewCategoryHandler(f.categories)
	productHandler := NewProductHandler(f.products)
	bannerHandler := NewBannerHandler(f.banners)
	importHandler := NewImportHandler(categoryImport, productImport, 100, 2048)
	uploadHandler := NewUploadHandler(images)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")

	cats := api.Group("/categories")
	cats.GET("", categoryHandler.List)
	cats.GET("/tree", categoryHandler.GetTree)
	cats.GET("/roots", categoryHandler.GetRoots)
	cats.GET("/slug/:slug", categoryHandler.GetBySlug)
	cats.GET("/:id", categoryHandler.GetByID)
	cats.GET("/:id/children", categoryHandler.GetChildren)
	cats.GET("/:id/subtree", categoryHandler.Subtree)
	cats.POST("", categoryHandler.Create)
	cats.PUT("/:id", categoryHandler.Update)
	cats.POST("/:id/move", categoryHandler.Move)
	cats.POST("/:id/activate", categoryHandler.Activate)
	cats.POST("/:id/deactivate", categoryHandler.Deactivate)
	cats.DELETE("/:id", categoryHandler.Delete)

	prods := api.Group("/products")
	prods.GET("", productHandler.List)
	prods.GET("/:id", productHandler.GetByID)
	prods.POST("", productHandler.Create)
	prods.PUT("/:id", productHandler.Update)
	prods.DELETE("/:id", productHandler.Delete)

	bans := api.Group("/banners")
	bans.GET("/public", bannerHandler.ListLive)
	bans.GET("/stats", bannerHandler.Stats)
	bans.PUT("/reorder", bannerHandler.Reorder)
	bans.GET("", bannerHandler.List)
	bans.GET("/:id", bannerHandler.GetByID)
	bans.POST("", bannerHandler.Create)
	bans.PUT("/:id", bannerHandler.Update)
	bans.DELETE("/:id", bannerHandler.Delete)

	imp := api.Group("/import")
	imp.POST("/preview", importHandler.Preview)
	imp.POST("/categories", importHandler.ImportCategories)
	imp.POST("/products", importHandler.ImportProducts)

	up := api.Group("/uploads")
	up.POST("/images", uploadHandler.UploadImage)
	up.DELETE("/images/*public_id", uploadHandler.DeleteImage)

	f.engine = engine
	return f
}

// do sends a request with an optional JSON body
func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// upload sends a multipart request carrying one file plus plain fields
func (f *apiFixture) upload(t *testing.T, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// createCategory creates a category through the API and returns its decoded body
func (f *apiFixture) createCategory(t *testing.T, name string, parent *uuid.UUID) catalogapp.CategoryResponse {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": name, "parent_id": parent})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out catalogapp.CategoryResponse
	decodeData(t, w, &out)
	return out
}

// decodeData unmarshals the data member of the response envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}
