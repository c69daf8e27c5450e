package ordering

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jack5341/otel-order-chain/internal/db"
	"github.com/jack5341/otel-order-chain/internal/models"
	"github.com/jack5341/otel-order-chain/internal/tracing"
)

const (
	Description = "New Order"
	PaymentPeer = "paymentservice"

	// DBInstrumentation names the tracer that owns store spans.
	DBInstrumentation = "orderservice-db"
)

type Store interface {
	Info() db.ConnInfo
	InsertStatement() string
	CreateOrder(ctx context.Context, order *models.Order) error
}

type Caller interface {
	Get(ctx context.Context, peer, endpoint string) (string, error)
}

type Result struct {
	OrderID int64
	Payment string
}

// Workflow persists an order and then asks the payment service to charge it.
type Workflow struct {
	store           Store
	payments        Caller
	paymentEndpoint string
	dbTracer        trace.Tracer
	now             func() time.Time
}

func NewWorkflow(store Store, payments Caller, paymentEndpoint string, dbTracer trace.Tracer) *Workflow {
	return &Workflow{
		store:           store,
		payments:        payments,
		paymentEndpoint: paymentEndpoint,
		dbTracer:        dbTracer,
		now:             time.Now,
	}
}

// CreateOrder is terminal on the first failure. The failure is already on
// the span that was active when it happened; it is also put on the span in
// ctx so the request as a whole reads as failed.
func (w *Workflow) CreateOrder(ctx context.Context) (Result, error) {
	id, err := w.insertOrder(ctx)
	if err != nil {
		return Result{}, tracing.ErrorCtx(ctx, err)
	}

	payment, err := w.payments.Get(ctx, PaymentPeer, w.paymentEndpoint)
	if err != nil {
		return Result{}, tracing.ErrorCtx(ctx, err)
	}

	return Result{OrderID: id, Payment: payment}, nil
}

func (w *Workflow) insertOrder(ctx context.Context) (int64, error) {
	info := w.store.Info()
	ctx, span := w.dbTracer.Start(ctx, "mysql.query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			tracing.DBSystem.String(info.System),
			tracing.DBName.String(info.Name),
			tracing.NetPeerName.String(info.Host),
			tracing.DBUser.String(info.User),
		),
	)
	defer span.End()

	span.SetAttributes(tracing.DBStatement.String(w.store.InsertStatement()))

	order := &models.Order{CreatedAt: w.now().UTC(), Description: Description}
	if err := w.store.CreateOrder(ctx, order); err != nil {
		return 0, tracing.Error(span, err)
	}

	span.SetAttributes(tracing.DBOrderID.Int64(order.ID))
	tracing.Ok(span)
	return order.ID, nil
}
