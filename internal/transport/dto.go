package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CreateProductRequest struct {
	Title       string          `json:"title"       validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"       validate:"gt=0"`
	ImageURL    string          `json:"imageUrl"    validate:"required,url"`
	CategoryID  string          `json:"categoryId"  validate:"required,uuid"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"gte=1"`
	UserID    string `json:"userId"    validate:"required"`
}

type UpdateCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"gte=0"`
	UserID    string `json:"userId"    validate:"required"`
}

type ProductFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// CartResponse is the wire shape of a cart. ID is empty for a cart that has
// not been persisted yet.
type CartResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Items     []models.CartItem `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func NewCartResponse(c *models.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func EmptyCart(userID string, now time.Time) CartResponse {
	return CartResponse{
		UserID:    userID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
