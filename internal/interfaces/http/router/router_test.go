package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/auth"
	"github.com/snehagupta9582883065/recent-api/internal/infrastructure/config"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/handler"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.groups)
	assert.Same(t, engine, r.Engine())

	r = NewRouter(engine, WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewRouteGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouteGroup_Methods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

	g := NewRouteGroup("items", "/items").
		GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		PATCH("/:id", ok).
		DELETE("/:id", ok)
	assert.Equal(t, "items", g.Name())
	assert.Equal(t, "/items", g.Prefix())

	NewRouter(engine).Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPut, "/api/v1/items/1"},
		{http.MethodPatch, "/api/v1/items/1"},
		{http.MethodDelete, "/api/v1/items/1"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.method, w.Body.String())
	}
}

func TestRouteGroup_MiddlewareStaysInSubgroup(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }

	g := NewRouteGroup("things", "/things").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })
	g.Guarded(deny).
		POST("", func(c *gin.Context) { c.String(http.StatusCreated, "created") })

	NewRouter(engine).Register(g).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/things").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodPost, "/api/v1/things").Code)
}

func TestRouteGroup_NestedPrefix(t *testing.T) {
	engine := gin.New()

	g := NewRouteGroup("categories", "/categories")
	g.Group("category-images", "/:id/images").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })

	NewRouter(engine).Register(g).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/categories/abc/images")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())
}

func newAPIEngine(t *testing.T, opts ...RouterOption) (*gin.Engine, *auth.JWTService) {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-of-32-characters",
		AccessTokenExpiration: time.Minute,
		Issuer:                "router-test",
	})

	engine := gin.New()
	RegisterAPI(NewRouter(engine, opts...), Handlers{
		Category: handler.NewCategoryHandler(nil),
		Product:  handler.NewProductHandler(nil),
		Banner:   handler.NewBannerHandler(nil),
		Import:   handler.NewImportHandler(nil, nil, 0, 0),
		Upload:   handler.NewUploadHandler(nil),
		System:   handler.NewSystemHandler("recent-api", "test"),
	}, middleware.AdminAuth(jwtService, nil))
	return engine, jwtService
}

func TestRegisterAPI_RouteTable(t *testing.T) {
	engine, _ := newAPIEngine(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /api/v1/system/info",
		"GET /api/v1/categories",
		"GET /api/v1/categories/tree",
		"GET /api/v1/categories/roots",
		"GET /api/v1/categories/slug/:slug",
		"GET /api/v1/categories/:id",
		"GET /api/v1/categories/:id/children",
		"GET /api/v1/categories/:id/subtree",
		"POST /api/v1/categories",
		"PUT /api/v1/categories/:id",
		"DELETE /api/v1/categories/:id",
		"POST /api/v1/categories/:id/move",
		"POST /api/v1/categories/:id/activate",
		"POST /api/v1/categories/:id/deactivate",
		"GET /api/v1/products",
		"GET /api/v1/products/:id",
		"POST /api/v1/products",
		"PUT /api/v1/products/:id",
		"DELETE /api/v1/products/:id",
		"GET /api/v1/banners/public",
		"GET /api/v1/banners",
		"GET /api/v1/banners/stats",
		"PUT /api/v1/banners/reorder",
		"GET /api/v1/banners/:id",
		"POST /api/v1/banners",
		"PUT /api/v1/banners/:id",
		"DELETE /api/v1/banners/:id",
		"POST /api/v1/import/preview",
		"POST /api/v1/import/categories",
		"POST /api/v1/import/products",
		"POST /api/v1/uploads/images",
		"DELETE /api/v1/uploads/images/*public_id",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
	assert.Len(t, registered, len(expected))
}

func TestRegisterAPI_AdminRoutesRequireToken(t *testing.T) {
	engine, jwtService := newAPIEngine(t)

	guarded := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/categories"},
		{http.MethodPut, "/api/v1/categories/x"},
		{http.MethodDelete, "/api/v1/categories/x"},
		{http.MethodPost, "/api/v1/categories/x/move"},
		{http.MethodPost, "/api/v1/products"},
		{http.MethodGet, "/api/v1/banners"},
		{http.MethodGet, "/api/v1/banners/stats"},
		{http.MethodPut, "/api/v1/banners/reorder"},
		{http.MethodPost, "/api/v1/import/products"},
		{http.MethodPost, "/api/v1/uploads/images"},
		{http.MethodDelete, "/api/v1/uploads/images/products/a.png"},
	}
	for _, tt := range guarded {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tt.method, tt.path)
	}

	viewer, err := jwtService.Issue("viewer", "viewer", 0)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", nil)
	req.Header.Set("Authorization", "Bearer "+viewer.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterAPI_PublicRoutes(t *testing.T) {
	engine, _ := newAPIEngine(t)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/system/info").Code)
	// malformed ids are rejected before any service is touched
	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodGet, "/api/v1/categories/not-a-uuid").Code)
	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodGet, "/api/v1/products/not-a-uuid").Code)
}

func TestRegisterAPI_Swagger(t *testing.T) {
	t.Run("not mounted by default", func(t *testing.T) {
		engine, _ := newAPIEngine(t)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/index.html").Code)
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/doc.json").Code)
	})

	t.Run("serves ui and document when enabled", func(t *testing.T) {
		engine, _ := newAPIEngine(t, WithSwagger(true))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/swagger/index.html").Code)

		w := serve(engine, http.MethodGet, "/swagger/doc.json")
		require.Equal(t, http.StatusOK, w.Code)
		var doc struct {
			BasePath string                    `json:"basePath"`
			Paths    map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "/api/v1", doc.BasePath)
		assert.Contains(t, doc.Paths, "/categories/{id}/move")
		assert.Contains(t, doc.Paths["/categories/{id}"], "delete")
	})
}
