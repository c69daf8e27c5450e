package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/logging"
	"github.com/jack5341/otel-order-chain/pkg/ordering"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context) (ordering.Result, error)
}

type OrderHandler struct {
	workflow OrderCreator
	logger   *zap.Logger
}

func NewOrderHandler(workflow OrderCreator, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{workflow: workflow, logger: logger}
}

// Create answers 200 on both outcomes; the body text tells them apart.
func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logging.WithTrace(ctx, h.logger)

	res, err := h.workflow.CreateOrder(ctx)
	if err != nil {
		log.Error("order creation failed", zap.Error(err))
		return c.String(http.StatusOK, "Error creating order: "+err.Error())
	}

	log.Info("order created", zap.Int64("order_id", res.OrderID))
	return c.String(http.StatusOK, fmt.Sprintf("Order ID: %d", res.OrderID))
}
