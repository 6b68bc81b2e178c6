package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreateLogger returns the root logger configured for the given environment.
// Production logs JSON to stdout, everything else gets the console writer.
func CreateLogger(environment string) zerolog.Logger {
	if environment == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	return zerolog.New(output).With().Timestamp().Logger()
}

// RequestLogger attaches a request-scoped logger with a unique request id
// to the context and logs the request after it completes.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		l := logger.With().Str("request_id", uuid.New().String()).Logger()
		ctx := l.WithContext(gctx.Request.Context())
		gctx.Request = gctx.Request.WithContext(ctx)

		gctx.Next()

		level := zerolog.InfoLevel
		if gctx.Writer.Status() >= http.StatusInternalServerError {
			level = zerolog.ErrorLevel
		}

		l.WithLevel(level).
			Str("method", gctx.Request.Method).
			Str("path", gctx.Request.URL.Path).
			Int("status", gctx.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Send()
	}
}
