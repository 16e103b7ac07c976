package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	DB             *gorm.DB
}

// Register mounts the API at the root and again under /api.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	mount(e.Group(""), d)
	mount(e.Group("/api"), d)
}

func mount(g *echo.Group, d *Deps) {
	products := g.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct)

	categories := g.Group("/categories")
	categories.GET("", d.CatalogHandler.GetCategories)
	categories.POST("", d.CatalogHandler.CreateCategory)

	cart := g.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("", d.CartHandler.UpdateCart)
	cart.DELETE("", d.CartHandler.ClearCart)
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusOK)
	}
	if err := db.Ping(c.Request().Context(), d.DB); err != nil {
		logging.FromContext(c.Request().Context()).Error("readiness_failed", "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
