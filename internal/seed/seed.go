package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
)

type Result struct {
	Categories      int
	ProductsCreated int
	ProductsSkipped int
}

// Run loads the demo catalog. Categories are matched by slug and products by
// title, so running it again adds nothing. idx may be nil.
func Run(ctx context.Context, r *repo.GormRepo, idx service.ProductIndex) (Result, error) {
	l := logging.FromContext(ctx).With("component", "seed")
	var res Result

	bySlug := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		cat, err := r.FirstOrCreateCategory(ctx, &models.Category{Name: c.Name, Slug: c.Slug})
		if err != nil {
			return res, fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		bySlug[c.Slug] = cat
		res.Categories++
	}

	for _, p := range products {
		_, err := r.ProductByTitle(ctx, p.Title)
		if err == nil {
			res.ProductsSkipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("seed product %q: %w", p.Title, err)
		}

		created, err := r.CreateProduct(ctx, &models.Product{
			Title:       p.Title,
			Description: p.Description,
			Price:       decimal.RequireFromString(p.Price),
			ImageURL:    p.ImageURL,
			CategoryID:  bySlug[p.CategorySlug].ID,
		})
		if err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Title, err)
		}
		res.ProductsCreated++

		if idx != nil {
			if err := idx.Index(ctx, created); err != nil {
				l.Warn("seed_index_error", "product_id", created.ID, "error", err)
			}
		}
	}

	l.Info("seed_done",
		"categories", res.Categories,
		"products_created", res.ProductsCreated,
		"products_skipped", res.ProductsSkipped)
	return res, nil
}
