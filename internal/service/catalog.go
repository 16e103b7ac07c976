package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

// ProductIndex is a full text index over products. Search returns matching
// product ids in relevance order.
type ProductIndex interface {
	Index(ctx context.Context, p *models.Product) error
	Search(ctx context.Context, q string, offset, limit int) (int64, []uuid.UUID, error)
}

type CatalogService struct {
	Repo *repo.GormRepo
	// Index is optional. Without it search runs against the database.
	Index ProductIndex
}

func (s *CatalogService) ListProducts(ctx context.Context, f transport.ProductFilter) (*transport.ProductListResponse, error) {
	f.Limit, f.Offset = util.Clamp(f.Limit, f.Offset)

	total, items, err := s.Repo.ListProducts(ctx, f)
	if err != nil {
		return nil, err
	}
	return page(items, total, f.Limit, f.Offset), nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, limit, offset int) (*transport.ProductListResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fieldError("q", "is required")
	}
	if s.Index == nil {
		return s.ListProducts(ctx, transport.ProductFilter{Search: q, Limit: limit, Offset: offset})
	}

	limit, offset = util.Clamp(limit, offset)
	total, ids, err := s.Index.Search(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	items, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return page(items, total, limit, offset), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	ve := check(req)
	// prices are stored with two decimals
	if req.Price.IsPositive() && !req.Price.Round(2).IsPositive() {
		ve = ve.add("price", "must be at least 0.01")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err == nil {
		ok, err := s.Repo.CategoryExists(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			ve = ve.add("categoryId", "category does not exist")
		}
	}
	if ve != nil {
		return nil, ve
	}

	created, err := s.Repo.CreateProduct(ctx, &models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price.Round(2),
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
	})
	if err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Index(ctx, created); err != nil {
			logging.FromContext(ctx).Warn("index_product_error", "product_id", created.ID, "error", err)
		}
	}
	return created, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if ve := check(req); ve != nil {
		return nil, ve
	}

	_, err := s.Repo.CategoryBySlug(ctx, req.Slug)
	if err == nil {
		return nil, fmt.Errorf("category slug %q: %w", req.Slug, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat, err := s.Repo.CreateCategory(ctx, &models.Category{Name: req.Name, Slug: req.Slug})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("category slug %q: %w", req.Slug, ErrConflict)
	}
	return cat, err
}

func page(items []models.Product, total int64, limit, offset int) *transport.ProductListResponse {
	if items == nil {
		items = []models.Product{}
	}
	return &transport.ProductListResponse{
		Products: items,
		Pagination: transport.Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: util.HasMore(offset, limit, total),
		},
	}
}
