package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
)

// Propagator is the single serializer for trace context at process
// boundaries. Outbound calls inject with it and inbound middleware extracts
// with it; the global otel propagator is never consulted.
var Propagator propagation.TextMapPropagator = propagation.TraceContext{}

// Inject writes the span context held by ctx into h as a traceparent header.
func Inject(ctx context.Context, h http.Header) {
	Propagator.Inject(ctx, propagation.HeaderCarrier(h))
}

// Extract returns ctx with the remote span context found in h. Without a
// traceparent header ctx is returned unchanged and the next span starts a new
// trace.
func Extract(ctx context.Context, h http.Header) context.Context {
	return Propagator.Extract(ctx, propagation.HeaderCarrier(h))
}
