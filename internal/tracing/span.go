package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorCtx marks the span carried by ctx as failed. With no span in ctx the
// no-op span absorbs the call.
func ErrorCtx(ctx context.Context, err error) error {
	span := trace.SpanFromContext(ctx)

	return Error(span, err)
}

// Errorf formats an error and records it on s like Error.
func Errorf(s trace.Span, format string, a ...interface{}) error {
	return Error(s, fmt.Errorf(format, a...))
}

// Error records err on s, marks s as failed and returns err unchanged.
func Error(s trace.Span, err error) error {
	s.RecordError(err)
	s.SetStatus(codes.Error, err.Error())

	return err
}

// Ok marks s as successful.
func Ok(s trace.Span) {
	s.SetStatus(codes.Ok, "")
}
