package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsConfig configures shipping zap entries to the collector.
type LogsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
	// Level is the minimum level exported; local output keeps its own level
	Level zapcore.Level
}

// LogProvider batches log records to the collector over OTLP/gRPC.
type LogProvider struct {
	sdk   *sdklog.LoggerProvider
	name  string
	level zapcore.Level
}

// NewLogProvider builds the exporting provider and makes it global. When
// cfg.Enabled is false the provider is inert and Attach returns the logger
// unchanged.
func NewLogProvider(ctx context.Context, cfg LogsConfig, log *zap.Logger) (*LogProvider, error) {
	lp := &LogProvider{name: cfg.ServiceName, level: cfg.Level}
	if !cfg.Enabled {
		return lp, nil
	}

	exporterOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlp log exporter: %w", err)
	}
	res, err := serviceResource(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, err
	}

	lp.sdk = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)))
	global.SetLoggerProvider(lp.sdk)
	if log != nil {
		log.Named("logs").Info("exporting log records",
			zap.String("endpoint", cfg.CollectorEndpoint),
			zap.Stringer("min_level", cfg.Level))
	}
	return lp, nil
}

// Attach returns log writing to both its current core and the collector.
func (lp *LogProvider) Attach(log *zap.Logger) *zap.Logger {
	if lp.sdk == nil {
		return log
	}
	bridge := minLevelCore{
		Core:  otelzap.NewCore(lp.name, otelzap.WithLoggerProvider(lp.sdk)),
		level: lp.level,
	}
	return log.WithOptions(zap.WrapCore(func(local zapcore.Core) zapcore.Core {
		return zapcore.NewTee(local, bridge)
	}))
}

// Shutdown exports the records still buffered.
func (lp *LogProvider) Shutdown(ctx context.Context) error {
	if lp.sdk == nil {
		return nil
	}
	return flush(ctx, "logger", lp.sdk.Shutdown)
}

// minLevelCore drops entries below level. The otelzap core has no level of
// its own.
type minLevelCore struct {
	zapcore.Core
	level zapcore.Level
}

func (c minLevelCore) Enabled(l zapcore.Level) bool {
	return l >= c.level && c.Core.Enabled(l)
}

func (c minLevelCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if e.Level < c.level {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c minLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return minLevelCore{Core: c.Core.With(fields), level: c.level}
}
