package http

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/internal/config"
	"github.com/jack5341/otel-order-chain/internal/handlers"
	imw "github.com/jack5341/otel-order-chain/internal/http/middleware"
	"github.com/jack5341/otel-order-chain/pkg/ordering"
	"github.com/jack5341/otel-order-chain/pkg/outbound"
	"github.com/jack5341/otel-order-chain/pkg/payment"
)

type OrderStore interface {
	ordering.Store
	handlers.Pinger
}

func RegisterGateway(e *echo.Echo, tp trace.TracerProvider, cfg config.Gateway, logger *zap.Logger) {
	imw.Apply(e, tp, cfg.ServiceName, logger)

	client := outbound.NewClient(tp.Tracer(cfg.ServiceName), cfg.OutboundTimeout)
	gateway := handlers.NewGatewayHandler(client, cfg.OrderServiceEndpoint, logger)
	health := handlers.NewHealthHandler(nil)

	e.GET("/create-order", gateway.CreateOrder)
	e.GET("/health", health.Liveness)
}

func RegisterOrderService(e *echo.Echo, tp trace.TracerProvider, cfg config.OrderService, store OrderStore, logger *zap.Logger) {
	imw.Apply(e, tp, cfg.ServiceName, logger)

	client := outbound.NewClient(tp.Tracer(cfg.ServiceName), cfg.OutboundTimeout)
	workflow := ordering.NewWorkflow(store, client, cfg.PaymentServiceEndpoint, tp.Tracer(ordering.DBInstrumentation))
	order := handlers.NewOrderHandler(workflow, logger)
	health := handlers.NewHealthHandler(store)

	e.GET("/order", order.Create)
	e.GET("/health", health.Liveness)
	e.GET("/ready", health.Readiness)
}

func RegisterPaymentService(e *echo.Echo, tp trace.TracerProvider, cfg config.PaymentService, logger *zap.Logger) {
	imw.Apply(e, tp, cfg.ServiceName, logger)

	processor := payment.NewProcessor(tp.Tracer(cfg.ServiceName), cfg.MinDelay, cfg.MaxDelay)
	pay := handlers.NewPaymentHandler(processor, logger)
	health := handlers.NewHealthHandler(nil)

	e.GET("/pay", pay.Pay)
	e.GET("/health", health.Liveness)
}
