package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	DBSystem        string
	SlowQueryThresh time.Duration
	// IncludeVariables puts bound values in span statements. Applicant
	// data is personal, so keep it off outside development.
	IncludeVariables bool
}

// DefaultDBTracingConfig returns the production defaults.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{DBSystem: "postgresql", SlowQueryThresh: 200 * time.Millisecond}
}

type contextKey string

const queryStartKey contextKey = "sirepre_query_start"

// RegisterDBTracing installs otelgorm plus a callback pair that flags slow
// statements on the current span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.IncludeVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("sirepre:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("sirepre:after_create", after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("sirepre:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("sirepre:after_query", after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("sirepre:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("sirepre:after_update", after); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("sirepre:before_raw", before); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("sirepre:after_raw", after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh))
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	start, ok := ctx.Value(queryStartKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
