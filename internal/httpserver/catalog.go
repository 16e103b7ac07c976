package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc    *service.CatalogService
	Events events.Publisher
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	limit, offset := util.Window(c.QueryParam("limit"), c.QueryParam("offset"))
	res, err := h.Svc.ListProducts(ctx, transport.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return failure(http.StatusInternalServerError, "Failed to fetch products")
	}

	l.Info("get_products_success", "total", res.Pagination.Total)
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	limit, offset := util.Window(c.QueryParam("limit"), c.QueryParam("offset"))
	res, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_products_error", "status", 400, "reason", "empty query", "error", err)
			return invalidInput(err)
		}
		l.Error("search_products_error", "status", 500, "reason", "search failed", "error", err)
		return failure(http.StatusInternalServerError, "Failed to search products")
	}

	l.Info("search_products_success", "total", res.Pagination.Total)
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not a uuid", "error", err)
		return failure(http.StatusBadRequest, "Invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found", "error", err)
			return failure(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_error", "status", 500, "reason", "cannot get product", "error", err)
		return failure(http.StatusInternalServerError, "Failed to fetch product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return invalidInput(err)
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", "validation failed", "error", err)
			return invalidInput(err)
		}
		l.Error("create_product_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return failure(http.StatusInternalServerError, "Failed to create product")
	}

	publish(c, h.Events, events.TopicProduct, created.ID.String(), map[string]any{
		"type":       events.ProductCreated,
		"productId":  created.ID,
		"title":      created.Title,
		"categoryId": created.CategoryID,
	})

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("get_categories_error", "status", 500, "reason", "cannot list categories", "error", err)
		return failure(http.StatusInternalServerError, "Failed to fetch categories")
	}

	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return invalidInput(err)
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_category_error", "status", 400, "reason", "validation failed", "error", err)
			return invalidInput(err)
		case errors.Is(err, service.ErrConflict):
			l.Warn("create_category_error", "status", 409, "reason", "slug taken", "error", err)
			return failure(http.StatusConflict, "Category slug already exists")
		}
		l.Error("create_category_error", "status", 500, "reason", "cannot add category to db", "error", err)
		return failure(http.StatusInternalServerError, "Failed to create category")
	}

	publish(c, h.Events, events.TopicProduct, cat.ID.String(), map[string]any{
		"type":       events.CategoryCreated,
		"categoryId": cat.ID,
		"slug":       cat.Slug,
	})

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}
