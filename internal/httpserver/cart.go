package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CartHTTP struct {
	Svc    *service.CartService
	Events events.Publisher
}

const userIDRequiredMsg = "User ID is required"

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID := c.QueryParam("userId")
	if userID == "" {
		l.Warn("get_cart_error", "status", 400, "reason", "missing userId")
		return failure(http.StatusBadRequest, userIDRequiredMsg)
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "reason", "cannot load cart", "error", err)
		return failure(http.StatusInternalServerError, "Failed to fetch cart")
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return invalidInput(err)
	}

	cart, err := h.Svc.AddItem(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "reason", "validation failed", "error", err)
			return invalidInput(err)
		}
		l.Error("add_to_cart_error", "status", 500, "reason", "cannot add item", "error", err)
		return failure(http.StatusInternalServerError, "Failed to add to cart")
	}

	publish(c, h.Events, events.TopicCart, req.UserID, map[string]any{
		"type":      events.CartItemAdded,
		"userId":    req.UserID,
		"productId": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("add_to_cart_success", "user_id", req.UserID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_cart")

	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return invalidInput(err)
	}

	cart, err := h.Svc.UpdateItem(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_cart_error", "status", 400, "reason", "validation failed", "error", err)
			return invalidInput(err)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_cart_error", "status", 404, "reason", "cart not found", "error", err)
			return failure(http.StatusNotFound, "Cart not found")
		}
		l.Error("update_cart_error", "status", 500, "reason", "cannot update item", "error", err)
		return failure(http.StatusInternalServerError, "Failed to update cart")
	}

	eventType := events.CartItemUpdated
	if req.Quantity == 0 {
		eventType = events.CartItemRemoved
	}
	publish(c, h.Events, events.TopicCart, req.UserID, map[string]any{
		"type":      eventType,
		"userId":    req.UserID,
		"productId": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("update_cart_success", "user_id", req.UserID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	userID := c.QueryParam("userId")
	if userID == "" {
		l.Warn("clear_cart_error", "status", 400, "reason", "missing userId")
		return failure(http.StatusBadRequest, userIDRequiredMsg)
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "reason", "cannot clear cart", "error", err)
		return failure(http.StatusInternalServerError, "Failed to clear cart")
	}

	publish(c, h.Events, events.TopicCart, userID, map[string]any{
		"type":   events.CartCleared,
		"userId": userID,
	})

	l.Info("clear_cart_success", "user_id", userID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Cart cleared successfully"})
}
