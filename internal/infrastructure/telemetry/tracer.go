// Package telemetry wires OpenTelemetry tracing and metrics for the HTTP
// server, the database and the registration services.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// flushTimeout bounds how long Shutdown waits for the exporters.
const flushTimeout = 10 * time.Second

// Config holds telemetry configuration.
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

// TracerProvider exports spans over OTLP/gRPC. The zero provider, returned
// when tracing is off, leaves the global no-op provider in place.
type TracerProvider struct {
	sdk *sdktrace.TracerProvider
	log *zap.Logger
}

// NewTracerProvider builds the exporting provider and makes it global.
func NewTracerProvider(ctx context.Context, cfg Config, log *zap.Logger) (*TracerProvider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tracing")
	if !cfg.Enabled {
		log.Info("tracing off")
		return &TracerProvider{log: log}, nil
	}

	exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}
	res, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, err
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(samplerFor(cfg.SamplingRatio))),
	)
	otel.SetTracerProvider(sdk)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("exporting spans",
		zap.String("endpoint", cfg.CollectorEndpoint),
		zap.Float64("sampling_ratio", cfg.SamplingRatio))
	return &TracerProvider{sdk: sdk, log: log}, nil
}

// samplerFor clamps ratio: 1 or more samples everything, 0 or less nothing.
func samplerFor(ratio float64) sdktrace.Sampler {
	if ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	if ratio <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(ratio)
}

// serviceResource is shared by the span and metric exporters.
func serviceResource(name, version string) (*resource.Resource, error) {
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(version)))
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}
	return res, nil
}

// Enabled reports whether spans leave the process.
func (tp *TracerProvider) Enabled() bool {
	return tp.sdk != nil
}

// Shutdown flushes buffered spans.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if tp.sdk == nil {
		return nil
	}
	return flush(ctx, "tracer", tp.sdk.Shutdown)
}

func flush(ctx context.Context, what string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown %s provider: %w", what, err)
	}
	return nil
}
