package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/jack5341/otel-order-chain/pkg/ordering"
)

type fakeCaller struct {
	body     string
	err      error
	calls    int
	endpoint string
}

func (c *fakeCaller) Get(ctx context.Context, peer, endpoint string) (string, error) {
	c.calls++
	c.endpoint = endpoint
	return c.body, c.err
}

type fakeWorkflow struct {
	res ordering.Result
	err error
}

func (w *fakeWorkflow) CreateOrder(ctx context.Context) (ordering.Result, error) {
	return w.res, w.err
}

type fakePayer struct {
	err error
}

func (p *fakePayer) Pay(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return "Payment completed", nil
}

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(ctx context.Context) error { return p.err }

func serve(req *http.Request, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGatewayCreateOrder(t *testing.T) {
	orders := &fakeCaller{body: "Order ID: 42"}
	h := NewGatewayHandler(orders, "http://orderservice:8081/order", zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/create-order", nil), h.CreateOrder)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Order created","detail":"Order ID: 42"}`, rec.Body.String())
	require.Equal(t, "http://orderservice:8081/order", orders.endpoint)
}

func TestGatewayCreateOrderPassesErrorTextThrough(t *testing.T) {
	orders := &fakeCaller{body: "Error creating order: connection refused"}
	h := NewGatewayHandler(orders, "http://orderservice:8081/order", zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/create-order", nil), h.CreateOrder)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Order created","detail":"Error creating order: connection refused"}`, rec.Body.String())
}

func TestGatewayCreateOrderDownstreamFailure(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	ctx, span := tp.Tracer("tests").Start(context.Background(), "GET /create-order")

	orders := &fakeCaller{err: errors.New("downstream call failed: connection refused")}
	h := NewGatewayHandler(orders, "http://orderservice:8081/order", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/create-order", nil).WithContext(ctx)
	rec := serve(req, h.CreateOrder)
	span.End()

	require.Equal(t, http.StatusOK, rec.Code)

	var res CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "Error creating order", res.Message)
	require.Equal(t, "downstream call failed: connection refused", res.Detail)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestOrderCreate(t *testing.T) {
	h := NewOrderHandler(&fakeWorkflow{res: ordering.Result{OrderID: 7, Payment: "Payment completed"}}, zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/order", nil), h.Create)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Order ID: 7", rec.Body.String())
}

func TestOrderCreateFailure(t *testing.T) {
	h := NewOrderHandler(&fakeWorkflow{err: errors.New("insert order: table Orders doesn't exist")}, zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/order", nil), h.Create)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Error creating order: insert order: table Orders doesn't exist", rec.Body.String())
}

func TestPaymentPay(t *testing.T) {
	h := NewPaymentHandler(&fakePayer{}, zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/pay", nil), h.Pay)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Payment completed", rec.Body.String())
}

func TestPaymentPayAbandoned(t *testing.T) {
	h := NewPaymentHandler(&fakePayer{err: context.Canceled}, zap.NewNop())

	rec := serve(httptest.NewRequest(http.MethodGet, "/pay", nil), h.Pay)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil)
	h.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	rec := serve(httptest.NewRequest(http.MethodGet, "/health", nil), h.Liveness)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"Healthy","timestamp":"2026-10-18T12:00:00Z"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	cases := []struct {
		Name   string
		DB     Pinger
		Status int
	}{
		{Name: "no db", DB: nil, Status: http.StatusServiceUnavailable},
		{Name: "db down", DB: &fakePinger{err: errors.New("connection refused")}, Status: http.StatusServiceUnavailable},
		{Name: "db up", DB: &fakePinger{}, Status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			h := NewHealthHandler(tc.DB)
			rec := serve(httptest.NewRequest(http.MethodGet, "/ready", nil), h.Readiness)
			require.Equal(t, tc.Status, rec.Code)
		})
	}
}
