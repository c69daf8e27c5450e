package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/logging"
)

type Payer interface {
	Pay(ctx context.Context) (string, error)
}

type PaymentHandler struct {
	payments Payer
	logger   *zap.Logger
}

func NewPaymentHandler(payments Payer, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()

	res, err := h.payments.Pay(ctx)
	if err != nil {
		// only reachable when the caller went away
		logging.WithTrace(ctx, h.logger).Warn("payment abandoned", zap.Error(err))
		return c.String(http.StatusServiceUnavailable, err.Error())
	}

	return c.String(http.StatusOK, res)
}
