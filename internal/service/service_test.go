package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return &repo.GormRepo{DB: gdb}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	names := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		names = append(names, f.Field)
	}
	return names
}

func seedCatalog(t *testing.T, svc *CatalogService) (electronics, books *models.Category) {
	t.Helper()
	ctx := context.Background()

	electronics, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Electronics", Slug: "electronics"})
	require.NoError(t, err)
	books, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	products := []struct {
		title, desc string
		cat         *models.Category
	}{
		{"Wireless Headphones", "Noise cancelling over-ear headphones", electronics},
		{"Smart Watch", "Fitness tracking and notifications", electronics},
		{"USB-C Cable", "Braided charging cable", electronics},
		{"The Go Programming Language", "A book about Go", books},
		{"Cookbook", "Recipes for smart cooks", books},
	}
	for _, p := range products {
		_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
			Title:       p.title,
			Description: p.desc,
			Price:       decimal.RequireFromString("19.99"),
			ImageURL:    "https://images.example.com/item.jpg",
			CategoryID:  p.cat.ID.String(),
		})
		require.NoError(t, err)
	}
	return electronics, books
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:       "Novel",
		Description: "A story",
		Price:       decimal.NewFromInt(-5),
		ImageURL:    "https://images.example.com/novel.jpg",
		CategoryID:  cat.ID.String(),
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"price"}, fieldNames(t, err))
}

func TestCreateProduct_PriceRoundsToZero(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	req := transport.CreateProductRequest{
		Title:       "Bookmark",
		Description: "Paper bookmark",
		Price:       decimal.RequireFromString("0.004"),
		ImageURL:    "https://images.example.com/bookmark.jpg",
		CategoryID:  cat.ID.String(),
	}
	_, err = svc.CreateProduct(ctx, req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"price"}, fieldNames(t, err))

	res, err := svc.ListProducts(ctx, transport.ProductFilter{})
	require.NoError(t, err)
	assert.Zero(t, res.Pagination.Total)

	req.Price = decimal.RequireFromString("0.005")
	created, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("0.01")))
}

func TestCreateProduct_ReportsEveryViolation(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		ImageURL: "not a url",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.ElementsMatch(t,
		[]string{"title", "description", "price", "imageUrl", "categoryId"},
		fieldNames(t, err))
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("12.00"),
		ImageURL:    "https://images.example.com/lamp.jpg",
		CategoryID:  uuid.NewString(),
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{"categoryId"}, fieldNames(t, err))
}

func TestCreateProduct_EmbedsCategory(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Home", Slug: "home"})
	require.NoError(t, err)

	p, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("12.5"),
		ImageURL:    "https://images.example.com/lamp.jpg",
		CategoryID:  cat.ID.String(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	require.NotNil(t, p.Category)
	assert.Equal(t, "home", p.Category.Slug)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("12.50")))

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	_, err = svc.GetProduct(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCategory(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "More Books", Slug: "books"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{Slug: "Not A Slug"})
	require.ErrorIs(t, err, ErrValidation)
	assert.ElementsMatch(t, []string{"name", "slug"}, fieldNames(t, err))

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
}

func TestListCategories_NameAscending(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	for _, name := range []string{"Home", "Books", "Clothing"} {
		_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: name, Slug: fmt.Sprintf("c-%d", len(name))})
		require.NoError(t, err)
	}

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Books", cats[0].Name)
	assert.Equal(t, "Clothing", cats[1].Name)
	assert.Equal(t, "Home", cats[2].Name)
}

func TestListProducts_Filters(t *testing.T) {
	svc := &CatalogService{Repo: newTestRepo(t)}
	seedCatalog(t, svc)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter transport.ProductFilter
		want   []string
	}{
		{
			name:   "category only",
			filter: transport.ProductFilter{Category: "electronics"},
			want:   []string{"Wireless Headphones", "Smart Watch", "USB-C Cable"},
		},
		{
			name:   "category and search",
			filter: transport.ProductFilter{Category: "electronics", Search: "SMART"},
			want:   []string{"Smart Watch"},
		},
		{
			name:   "search matches description",
			filter: transport.ProductFilter{Search: "smart"},
			want:   []string{"Smart Watch", "Cookbook"},
		},
		{
			name:   "unknown category",
			filter: transport.ProductFilter{Category: "garden"},
			want:   []string{},
		},
		{
			name:   "no filter",
			filter: transport.ProductFilter{},
			want: []string{
				"Wireless Headphones", "Smart Watch", "USB-C Cable",
				"The Go Programming Language", "Cookbook",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.ListProducts(ctx, tt.filter)
			require.NoError(t, err)

			titles := make([]string, 0, len(res.Products))
			for _, p := range res.Products {
				titles = append(titles, p.Title)
				if tt.filter.Category != "" {
					require.NotNil(t, p.Category)
					assert.Equal(t, tt.filter.Category, p.Category.Slug)
				}
			}
			assert.ElementsMatch(t, tt.want, titles)
			assert.EqualValues(t, len(tt.want), res.Pagination.Total)
			assert.Equal(t, 20, res.Pagination.Limit)
			assert.False(t, res.Pagination.HasMore)
		})
	}
}

func TestListProducts_HasMore(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		_, err := r.CreateProduct(ctx, &models.Product{
			Title:       fmt.Sprintf("book %d", i),
			Description: "d",
			Price:       decimal.NewFromInt(1),
			ImageURL:    "https://images.example.com/b.jpg",
			CategoryID:  cat.ID,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	res, err := svc.ListProducts(ctx, transport.ProductFilter{Limit: 4, Offset: 8})
	require.NoError(t, err)
	assert.EqualValues(t, 10, res.Pagination.Total)
	assert.False(t, res.Pagination.HasMore)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "book 1", res.Products[0].Title)

	res, err = svc.ListProducts(ctx, transport.ProductFilter{Limit: 4, Offset: 4})
	require.NoError(t, err)
	assert.True(t, res.Pagination.HasMore)
	require.Len(t, res.Products, 4)
	assert.Equal(t, "book 5", res.Products[0].Title)

	res, err = svc.ListProducts(ctx, transport.ProductFilter{Limit: 500, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Pagination.Limit)
	assert.Equal(t, 0, res.Pagination.Offset)
	assert.Len(t, res.Products, 10)
}

type fakeIndex struct {
	indexed []uuid.UUID
	hits    []uuid.UUID
	query   string
}

func (f *fakeIndex) Index(_ context.Context, p *models.Product) error {
	f.indexed = append(f.indexed, p.ID)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, offset, limit int) (int64, []uuid.UUID, error) {
	f.query = q
	return int64(len(f.hits)), f.hits, nil
}

func TestSearchProducts(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	idx := &fakeIndex{}
	svc := &CatalogService{Repo: r, Index: idx}
	seedCatalog(t, svc)
	require.Len(t, idx.indexed, 5)

	idx.hits = []uuid.UUID{idx.indexed[3], idx.indexed[0]}
	res, err := svc.SearchProducts(ctx, "  go  ", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "go", idx.query)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "The Go Programming Language", res.Products[0].Title)
	assert.Equal(t, "Wireless Headphones", res.Products[1].Title)

	_, err = svc.SearchProducts(ctx, " ", 10, 0)
	require.ErrorIs(t, err, ErrValidation)

	sqlOnly := &CatalogService{Repo: r}
	res, err = sqlOnly.SearchProducts(ctx, "cable", 10, 0)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "USB-C Cable", res.Products[0].Title)
}

func newCartFixture(t *testing.T) (*CartService, *models.Product, *models.Product) {
	t.Helper()
	r := newTestRepo(t)
	catalog := &CatalogService{Repo: r}
	ctx := context.Background()

	cat, err := catalog.CreateCategory(ctx, transport.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	mk := func(title string) *models.Product {
		p, err := catalog.CreateProduct(ctx, transport.CreateProductRequest{
			Title:       title,
			Description: "d",
			Price:       decimal.RequireFromString("5.25"),
			ImageURL:    "https://images.example.com/x.jpg",
			CategoryID:  cat.ID.String(),
		})
		require.NoError(t, err)
		return p
	}
	return &CartService{Repo: r}, mk("first"), mk("second")
}

func cartCount(t *testing.T, svc *CartService) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.Repo.DB.Model(&models.Cart{}).Count(&n).Error)
	return n
}

func TestGetCart_UnknownUser(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	cart, err := svc.GetCart(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "", cart.ID)
	assert.Equal(t, "ghost", cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cartCount(t, svc))

	_, err = svc.GetCart(context.Background(), "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	svc, p, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 2, UserID: "u1"})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 3, UserID: "u1"})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 5, cart.Items[0].Quantity)
	assert.NotEmpty(t, cart.ID)
	require.NotNil(t, cart.Items[0].Product)
	require.NotNil(t, cart.Items[0].Product.Category)
	assert.Equal(t, "books", cart.Items[0].Product.Category.Slug)
}

func TestAddItem_Validation(t *testing.T) {
	svc, p, _ := newCartFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.AddToCartRequest
		want []string
	}{
		{"zero quantity", transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 0, UserID: "u"}, []string{"quantity"}},
		{"missing user", transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 1}, []string{"userId"}},
		{"bad product id", transport.AddToCartRequest{ProductID: "nope", Quantity: 1, UserID: "u"}, []string{"productId"}},
		{"unknown product", transport.AddToCartRequest{ProductID: uuid.NewString(), Quantity: 1, UserID: "u"}, []string{"productId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, tt.req)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.want, fieldNames(t, err))
		})
	}
	assert.Zero(t, cartCount(t, svc))
}

func TestAddItem_Concurrent(t *testing.T) {
	svc, p, _ := newCartFixture(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 1, UserID: "busy"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := svc.GetCart(ctx, "busy")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, workers, cart.Items[0].Quantity)
	assert.EqualValues(t, 1, cartCount(t, svc))
}

func TestUpdateItem(t *testing.T) {
	svc, p1, p2 := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateItem(ctx, transport.UpdateCartRequest{ProductID: p1.ID.String(), Quantity: 1, UserID: "u1"})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p1.ID.String(), Quantity: 4, UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p2.ID.String(), Quantity: 1, UserID: "u1"})
	require.NoError(t, err)

	cart, err := svc.UpdateItem(ctx, transport.UpdateCartRequest{ProductID: p1.ID.String(), Quantity: 2, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	for _, it := range cart.Items {
		if it.ProductID == p1.ID {
			assert.EqualValues(t, 2, it.Quantity)
		}
	}

	cart, err = svc.UpdateItem(ctx, transport.UpdateCartRequest{ProductID: p1.ID.String(), Quantity: 0, UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, p2.ID, cart.Items[0].ProductID)

	_, err = svc.UpdateItem(ctx, transport.UpdateCartRequest{ProductID: p1.ID.String(), Quantity: -1, UserID: "u1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItem_BadProductID(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	for _, id := range []string{"", "not-a-uuid", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"} {
		var err error
		require.NotPanics(t, func() {
			_, err = svc.UpdateItem(context.Background(), transport.UpdateCartRequest{ProductID: id, Quantity: 1, UserID: "u1"})
		})
		require.ErrorIs(t, err, ErrValidation, id)
		assert.Equal(t, []string{"productId"}, fieldNames(t, err), id)
	}
}

func TestCarts_AreIsolated(t *testing.T) {
	svc, p, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 1, UserID: "alice"})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 7, UserID: "bob"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "bob"))

	alice, err := svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice.Items, 1)
	assert.EqualValues(t, 1, alice.Items[0].Quantity)

	bob, err := svc.GetCart(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Items)
}

func TestClearCart_Twice(t *testing.T) {
	svc, p, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, transport.AddToCartRequest{ProductID: p.ID.String(), Quantity: 1, UserID: "u1"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "u1"))
	require.NoError(t, svc.ClearCart(ctx, "u1"))
	require.NoError(t, svc.ClearCart(ctx, "never-seen"))
	assert.Zero(t, cartCount(t, svc))

	var items int64
	require.NoError(t, svc.Repo.DB.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, items)

	require.ErrorIs(t, svc.ClearCart(ctx, ""), ErrValidation)
}
