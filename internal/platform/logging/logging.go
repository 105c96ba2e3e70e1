// Package logging implements the cross-cutting structured-logging
// middleware named in SPEC_FULL.md's AMBIENT STACK, grounded on
// FACorreiaa's app/logger.StructuredLogger (log/slog, request-scoped
// fields, status/latency logged after the handler runs). The pattern is
// the same; the transport is the teacher's Gin rather than chi, since
// chi's middleware.WrapResponseWriter has no role in a Gin handler chain
// (gin.Context already exposes the status code).
package logging

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StructuredLogger returns a Gin middleware that logs one line at request
// start and one at completion, carrying a request id, method, path, and
// (on completion) status and latency.
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.New().String()
		c.Set("req_id", reqID)

		requestLogger := logger.With(
			slog.String("req_id", reqID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
		)
		requestLogger.InfoContext(c.Request.Context(), "request started")

		c.Next()

		requestLogger.InfoContext(c.Request.Context(), "request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes_written", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
