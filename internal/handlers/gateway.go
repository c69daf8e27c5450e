package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/logging"
	"github.com/jack5341/otel-order-chain/internal/tracing"
)

const OrderPeer = "orderservice"

type Caller interface {
	Get(ctx context.Context, peer, endpoint string) (string, error)
}

type CreateOrderResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

type GatewayHandler struct {
	orders        Caller
	orderEndpoint string
	logger        *zap.Logger
}

func NewGatewayHandler(orders Caller, orderEndpoint string, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{orders: orders, orderEndpoint: orderEndpoint, logger: logger}
}

// CreateOrder relays to the order service. A failed relay still answers 200
// and carries the error text in detail.
func (h *GatewayHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := h.orders.Get(ctx, OrderPeer, h.orderEndpoint)
	if err != nil {
		tracing.ErrorCtx(ctx, err)
		logging.WithTrace(ctx, h.logger).Error("order service call failed", zap.Error(err))
		return c.JSON(http.StatusOK, CreateOrderResponse{Message: "Error creating order", Detail: err.Error()})
	}

	return c.JSON(http.StatusOK, CreateOrderResponse{Message: "Order created", Detail: body})
}
