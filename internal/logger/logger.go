package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CorrelationIDHeader carries the request correlation ID on responses.
const CorrelationIDHeader = "X-Correlation-ID"

const contextKey = "correlation_id"

// Init builds the process logger. LOG_LEVEL selects the level (default info).
func Init() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	return cfg.Build()
}

// Middleware assigns a correlation ID to every request and logs its outcome.
// The logger may be nil (tests); the correlation ID is still propagated.
func Middleware(loggers ...*zap.Logger) gin.HandlerFunc {
	var logg *zap.Logger
	if len(loggers) > 0 {
		logg = loggers[0]
	}

	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKey, id)
		c.Header(CorrelationIDHeader, id)

		start := time.Now()
		c.Next()

		if logg != nil {
			logg.Info("http request",
				zap.String("correlation_id", id),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		}
	}
}

// CorrelationID returns the correlation ID assigned by Middleware, if any.
func CorrelationID(c *gin.Context) string {
	if id, ok := c.Get(contextKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
