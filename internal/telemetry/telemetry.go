// Package telemetry builds the process-wide tracer provider that hands
// finished spans to the collector.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	errorz "github.com/jack5341/otel-order-chain/internal/errors"
)

// Shutdown flushes queued spans and stops the exporter.
type Shutdown func(ctx context.Context) error

// InstanceID identifies this process in the service.instance.id resource attribute.
var InstanceID = uuid.NewString()

func NewResource(serviceName string) *sdkresource.Resource {
	return sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceInstanceID(InstanceID),
	)
}

// NewProvider returns a provider that batches finished spans into exporter.
// Extra options are applied last, so tests can swap in a syncer.
func NewProvider(res *sdkresource.Resource, exporter sdktrace.SpanExporter, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	base := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}
	if exporter != nil {
		base = append(base, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(append(base, opts...)...)
}

// Configure installs the global tracer provider exporting over OTLP to
// collectorEndpoint. When the OTLP pipeline cannot be built spans go to
// stdout instead, so a broken collector config never stops the service.
func Configure(ctx context.Context, serviceName, collectorEndpoint string, logger *zap.Logger) (trace.TracerProvider, Shutdown, error) {
	u, err := url.Parse(collectorEndpoint)
	if err != nil || u.Host == "" {
		return nil, nil, errors.Join(errorz.ErrInvalidConfig, fmt.Errorf("collector endpoint %q", collectorEndpoint), err)
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithExporterEndpoint(u.Host),
		otelconfig.WithExporterInsecure(u.Scheme != "https"),
		otelconfig.WithMetricsEnabled(false),
		otelconfig.WithResourceAttributes(map[string]string{
			string(semconv.ServiceInstanceIDKey): InstanceID,
		}),
	)
	if err == nil {
		logger.Info("otlp exporter configured", zap.String("endpoint", u.Host))
		return otel.GetTracerProvider(), func(context.Context) error {
			otelShutdown()
			return nil
		}, nil
	}

	logger.Warn("otlp exporter unavailable, falling back to stdout", zap.Error(err))

	exp, expErr := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if expErr != nil {
		return nil, nil, errors.Join(errorz.ErrErrorWileStartingOTel, err, expErr)
	}
	tp := NewProvider(NewResource(serviceName), exp)
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}
