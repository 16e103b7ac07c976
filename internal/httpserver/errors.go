package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const invalidInputMsg = "Invalid input data"

func failure(code int, msg string) *echo.HTTPError {
	return echo.NewHTTPError(code, transport.ErrorResponse{Error: msg})
}

// invalidInput renders every field violation carried by err.
func invalidInput(err error) *echo.HTTPError {
	resp := transport.ErrorResponse{Error: invalidInputMsg}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		resp.Details = ve.Fields
	}
	return echo.NewHTTPError(http.StatusBadRequest, resp)
}

func publish(c echo.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
