package middleware

import (
	"time"

	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger to the request context and
// writes one access line per request. It expects RequestID to run first.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}
