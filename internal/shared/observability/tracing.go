package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracer follows the global provider, so spans started before SetupTracing
// are no-ops and later ones are exported.
var Tracer trace.Tracer = otel.Tracer("tokenlint")

type TracingOptions struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

// ShutdownFunc flushes and stops the exporter.
type ShutdownFunc func(context.Context) error

// SetupTracing installs an OTLP/gRPC exporter when an endpoint is configured.
func SetupTracing(ctx context.Context, opts TracingOptions) (ShutdownFunc, error) {
	if opts.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	name := opts.ServiceName
	if name == "" {
		name = "tokenlint"
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
