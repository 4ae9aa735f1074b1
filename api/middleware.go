package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VictorHenrique01/mini-mercado-hub/internal/session"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an ID and logs its outcome.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Header(requestIDHeader, id)

		start := time.Now()
		ctx.Next()

		logger.Info("request handled",
			zap.String("request_id", id),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// RequireSession guards authenticated routes. A store that has not finished
// restoring answers 503 without a redirect hint, so clients wait instead of
// bouncing to login prematurely.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch store.State() {
		case session.StateAuthenticated:
			ctx.Next()
		case session.StateUnknown:
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "session still restoring, retry shortly",
			})
		default:
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "not authenticated",
				"redirect": LoginRoute,
			})
		}
	}
}
