package payment

import (
	"context"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jack5341/otel-order-chain/internal/tracing"
)

const Completed = "Payment completed"

// Processor simulates payment latency. It has no failure path of its own;
// only a cancelled request ends it early.
type Processor struct {
	otelTracer trace.Tracer
	minDelay   time.Duration
	maxDelay   time.Duration
}

func NewProcessor(otelTracer trace.Tracer, minDelay, maxDelay time.Duration) *Processor {
	return &Processor{otelTracer: otelTracer, minDelay: minDelay, maxDelay: maxDelay}
}

func (p *Processor) Pay(ctx context.Context) (string, error) {
	delay := p.delay()

	ctx, span := p.otelTracer.Start(ctx, "payment.process",
		trace.WithAttributes(tracing.PaymentDelayMs.Int64(delay.Milliseconds())),
	)
	defer span.End()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", tracing.Error(span, ctx.Err())
	}

	span.AddEvent("payment completed")
	tracing.Ok(span)
	return Completed, nil
}

// delay picks a duration in [minDelay, maxDelay).
func (p *Processor) delay() time.Duration {
	if p.maxDelay <= p.minDelay {
		return p.minDelay
	}
	return p.minDelay + rand.N(p.maxDelay-p.minDelay)
}
