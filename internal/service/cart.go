package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the user's cart, or an unsaved empty cart when the user has
// never added anything.
func (s *CartService) GetCart(ctx context.Context, userID string) (transport.CartResponse, error) {
	if userID == "" {
		return transport.CartResponse{}, fieldError("userId", "is required")
	}

	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.EmptyCart(userID, time.Now().UTC()), nil
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	return transport.NewCartResponse(cart), nil
}

func (s *CartService) AddItem(ctx context.Context, req transport.AddToCartRequest) (transport.CartResponse, error) {
	ve := check(req)

	productID, err := uuid.Parse(req.ProductID)
	if err == nil {
		ok, err := s.Repo.ProductExists(ctx, productID)
		if err != nil {
			return transport.CartResponse{}, err
		}
		if !ok {
			ve = ve.add("productId", "product does not exist")
		}
	}
	if ve != nil {
		return transport.CartResponse{}, ve
	}

	cart, err := s.Repo.AddItem(ctx, req.UserID, productID, uint(req.Quantity))
	if err != nil {
		return transport.CartResponse{}, err
	}
	return transport.NewCartResponse(cart), nil
}

// UpdateItem sets an absolute quantity. Zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, req transport.UpdateCartRequest) (transport.CartResponse, error) {
	if ve := check(req); ve != nil {
		return transport.CartResponse{}, ve
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return transport.CartResponse{}, fieldError("productId", "must be a valid UUID")
	}

	cart, err := s.Repo.UpdateItem(ctx, req.UserID, productID, uint(req.Quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.CartResponse{}, fmt.Errorf("cart for user %q: %w", req.UserID, ErrNotFound)
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	return transport.NewCartResponse(cart), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return fieldError("userId", "is required")
	}
	return s.Repo.ClearCart(ctx, userID)
}
