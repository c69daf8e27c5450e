package outbound

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	errorz "github.com/jack5341/otel-order-chain/internal/errors"
	"github.com/jack5341/otel-order-chain/internal/tracing"
)

// MaxBodyBytes caps how much of a downstream response is read.
const MaxBodyBytes = 1 << 20

// StatusError is returned when the downstream answered with a non-2xx status.
type StatusError struct {
	Peer       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Peer, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return errorz.ErrDownstreamCall }

// Client performs cross-service calls. Every call is a client span whose
// context travels to the callee in the traceparent header.
type Client struct {
	http       *http.Client
	otelTracer trace.Tracer
}

func NewClient(otelTracer trace.Tracer, timeout time.Duration) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		otelTracer: otelTracer,
	}
}

// Get calls endpoint on behalf of the span in ctx and returns the response
// body. Failures are recorded on the call span and returned unchanged in
// meaning; nothing is retried.
func (c *Client) Get(ctx context.Context, peer, endpoint string) (string, error) {
	ctx, span := c.otelTracer.Start(ctx, "GET "+peer,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			tracing.PeerService.String(peer),
			tracing.HTTPMethod.String(http.MethodGet),
			tracing.URLFull.String(endpoint),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", tracing.Error(span, fmt.Errorf("%w: %w", errorz.ErrDownstreamCall, err))
	}
	span.SetAttributes(tracing.ServerAddress.String(req.URL.Hostname()))
	tracing.Inject(ctx, req.Header)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", tracing.Error(span, fmt.Errorf("%w: %w", errorz.ErrDownstreamCall, err))
	}
	defer resp.Body.Close()

	span.SetAttributes(tracing.HTTPStatusCode.Int(resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", tracing.Errorf(span, "%w: reading %s response: %w", errorz.ErrDownstreamCall, peer, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", tracing.Error(span, &StatusError{Peer: peer, StatusCode: resp.StatusCode, Body: string(body)})
	}

	tracing.Ok(span)
	return string(body), nil
}
