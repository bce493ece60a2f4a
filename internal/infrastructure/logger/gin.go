package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GinMiddleware stores a request logger in the request context (see
// FromContext) and writes one access entry when the handler returns.
// Requests whose path starts with one of quietPrefixes are only logged
// when they fail, so load balancer probes stay out of the log.
func GinMiddleware(base *zap.Logger, quietPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		ctx, reqLog := WithRequestID(c.Request.Context(),
			base.With(zap.String("method", c.Request.Method), zap.String("path", path)),
			c.GetString("request_id"))
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		level := accessLevel(status)
		if level == zapcore.InfoLevel && hasAnyPrefix(path, quietPrefixes) {
			return
		}
		fields := make([]zap.Field, 0, 6)
		fields = append(fields,
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()))
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, zap.Strings("errors", errs.Errors()))
		}
		if ce := reqLog.Check(level, "HTTP Request"); ce != nil {
			ce.Write(fields...)
		}
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Recovery turns a panic into a logged 500 in the API's error envelope.
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		base.Error("Panic recovered",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("error", rec),
			zap.Stack("stacktrace"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "Error interno del servidor"},
		})
	})
}
