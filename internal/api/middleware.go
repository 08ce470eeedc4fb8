package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/romangod6/news-site/internal/metrics"
	"github.com/romangod6/news-site/internal/utils"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags each request with an id, reusing the caller's X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}

// requestLogger writes one log entry per request once it completes.
func requestLogger(log utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []utils.Field{
			utils.String("method", c.Request.Method),
			utils.String("path", path),
			utils.Int("status", c.Writer.Status()),
			utils.Duration("duration", time.Since(start)),
			utils.String("client_ip", c.ClientIP()),
			utils.String("request_id", c.GetString(requestIDKey)),
		}
		if query != "" {
			fields = append(fields, utils.String("query", query))
		}
		if !strings.HasPrefix(path, "/health") {
			fields = append(fields, utils.String("user_agent", c.Request.UserAgent()))
		}

		if len(c.Errors) > 0 {
			fields = append(fields, utils.Strings("errors", c.Errors.Errors()))
			log.Error("HTTP request with errors", fields...)
			return
		}
		log.Info("HTTP request", fields...)
	}
}

// recovery turns a handler panic into a logged 500.
func recovery(log utils.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error("Panic recovered",
			utils.Any("error", err),
			utils.String("path", c.Request.URL.Path),
			utils.String("method", c.Request.Method),
			utils.String("request_id", c.GetString(requestIDKey)),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// instrument records request latency under the matched gin route.
func instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
