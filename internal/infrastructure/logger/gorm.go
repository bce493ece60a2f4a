package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends gorm's output to zap. Statements go through Trace: errors
// at error level, statements over slowThreshold at warn, the rest at debug
// when the gorm level is Info. ErrRecordNotFound is an expected outcome of
// lookups and never logged.
type GormLogger struct {
	zl            *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(l *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{zl: l.Named("gorm").WithOptions(zap.AddCallerSkip(3)), level: level, slowThreshold: slowThreshold}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	g.message(ctx, gormlogger.Info, msg, args)
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	g.message(ctx, gormlogger.Warn, msg, args)
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	g.message(ctx, gormlogger.Error, msg, args)
}

func (g *GormLogger) message(ctx context.Context, at gormlogger.LogLevel, msg string, args []any) {
	if g.level < at {
		return
	}
	text := fmt.Sprintf(msg, args...)
	l := g.withRequest(ctx)
	switch at {
	case gormlogger.Error:
		l.Error(text)
	case gormlogger.Warn:
		l.Warn(text)
	default:
		l.Info(text)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := g.slowThreshold > 0 && elapsed > g.slowThreshold
	if !(failed && g.level >= gormlogger.Error) && !(slow && g.level >= gormlogger.Warn) && g.level < gormlogger.Info {
		return
	}

	stmt, rows := fc()
	l := g.withRequest(ctx).With(zap.String("sql", stmt), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	switch {
	case failed && g.level >= gormlogger.Error:
		l.Error("SQL Error", zap.Error(err))
	case slow && g.level >= gormlogger.Warn:
		l.Warn("Slow SQL", zap.Duration("threshold", g.slowThreshold))
	default:
		l.Debug("SQL Query")
	}
}

func (g *GormLogger) withRequest(ctx context.Context) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return g.zl.With(zap.String("request_id", id))
	}
	return g.zl
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// GormLevel maps the application log level onto gorm's; anything else is
// Warn.
func GormLevel(level string) gormlogger.LogLevel {
	if l, ok := gormLevels[level]; ok {
		return l
	}
	return gormlogger.Warn
}
