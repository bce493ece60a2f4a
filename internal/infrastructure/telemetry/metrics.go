package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ExportInterval    time.Duration
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

const defaultExportInterval = time.Minute

// MeterProvider pushes metrics periodically over OTLP/gRPC. Without an SDK
// provider, meters come from the global no-op provider.
type MeterProvider struct {
	sdk *sdkmetric.MeterProvider
}

// NewMeterProvider builds the exporting provider and makes it global.
func NewMeterProvider(ctx context.Context, cfg MetricsConfig, log *zap.Logger) (*MeterProvider, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("metrics")
	if !cfg.Enabled {
		log.Info("metrics off")
		return &MeterProvider{}, nil
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	exporterOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}
	res, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, err
	}

	sdk := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))))
	otel.SetMeterProvider(sdk)
	log.Info("exporting metrics",
		zap.String("endpoint", cfg.CollectorEndpoint),
		zap.Duration("interval", interval))
	return &MeterProvider{sdk: sdk}, nil
}

// Shutdown pushes the last collection.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.sdk == nil {
		return nil
	}
	return flush(ctx, "meter", mp.sdk.Shutdown)
}

// Meter returns a named meter.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.sdk == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.sdk.Meter(name, opts...)
}

// Counter counts events.
type Counter struct {
	inst metric.Int64Counter
}

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	inst, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{inst: inst}, nil
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.inst.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram records durations in seconds.
type Histogram struct {
	inst metric.Float64Histogram
}

// NewHistogram creates a histogram with explicit bucket boundaries.
func NewHistogram(meter metric.Meter, name, description, unit string, boundaries ...float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(boundaries) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(boundaries...))
	}
	inst, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	return &Histogram{inst: inst}, nil
}

// RecordDuration records d in seconds.
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.inst.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// Metric attribute keys.
var (
	AttrCargo        = attribute.Key("cargo")
	AttrReason       = attribute.Key("reason")
	AttrReviewStatus = attribute.Key("review_status")
	AttrOutcome      = attribute.Key("outcome")
)

// RenderDurationBuckets covers receipt rendering, which includes disk I/O.
var RenderDurationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
