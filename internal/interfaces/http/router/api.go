package router

import (
	"github.com/gin-gonic/gin"
	_ "github.com/snehagupta9582883065/recent-api/docs"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles every handler the API serves
type Handlers struct {
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Banner   *handler.BannerHandler
	Import   *handler.ImportHandler
	Upload   *handler.UploadHandler
	System   *handler.SystemHandler
}

// RegisterAPI wires the storefront and admin routes. Reads of categories,
// products and live banners are public; everything else passes adminAuth.
// The swagger UI is mounted only when the router was built WithSwagger.
func RegisterAPI(r *Router, h Handlers, adminAuth gin.HandlerFunc) {
	r.engine.GET("/health", h.System.Health)
	if r.swagger {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Register(
		systemRoutes(h.System),
		categoryRoutes(h.Category, adminAuth),
		productRoutes(h.Product, adminAuth),
		bannerRoutes(h.Banner, adminAuth),
		importRoutes(h.Import, adminAuth),
		uploadRoutes(h.Upload, adminAuth),
	).Setup()
}

func systemRoutes(h *handler.SystemHandler) *RouteGroup {
	return NewRouteGroup("system", "/system").
		GET("/info", h.GetSystemInfo)
}

func categoryRoutes(h *handler.CategoryHandler, adminAuth gin.HandlerFunc) *RouteGroup {
	g := NewRouteGroup("categories", "/categories").
		GET("", h.List).
		GET("/tree", h.GetTree).
		GET("/roots", h.GetRoots).
		GET("/slug/:slug", h.GetBySlug).
		GET("/:id", h.GetByID).
		GET("/:id/children", h.GetChildren).
		GET("/:id/subtree", h.Subtree)

	g.Guarded(adminAuth).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/move", h.Move).
		POST("/:id/activate", h.Activate).
		POST("/:id/deactivate", h.Deactivate)
	return g
}

func productRoutes(h *handler.ProductHandler, adminAuth gin.HandlerFunc) *RouteGroup {
	g := NewRouteGroup("products", "/products").
		GET("", h.List).
		GET("/:id", h.GetByID)

	g.Guarded(adminAuth).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
	return g
}

func bannerRoutes(h *handler.BannerHandler, adminAuth gin.HandlerFunc) *RouteGroup {
	g := NewRouteGroup("banners", "/banners").
		GET("/public", h.ListLive)

	g.Guarded(adminAuth).
		GET("", h.List).
		GET("/stats", h.Stats).
		PUT("/reorder", h.Reorder).
		GET("/:id", h.GetByID).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
	return g
}

func importRoutes(h *handler.ImportHandler, adminAuth gin.HandlerFunc) *RouteGroup {
	return NewRouteGroup("import", "/import").Use(adminAuth).
		POST("/preview", h.Preview).
		POST("/categories", h.ImportCategories).
		POST("/products", h.ImportProducts)
}

func uploadRoutes(h *handler.UploadHandler, adminAuth gin.HandlerFunc) *RouteGroup {
	return NewRouteGroup("uploads", "/uploads").Use(adminAuth).
		POST("/images", h.UploadImage).
		DELETE("/images/*public_id", h.DeleteImage)
}
