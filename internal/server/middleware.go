// internal/server/middleware.go
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	apperrors "idea-generator/internal/common/errors"
)

const (
	RequestIDHeader = "X-Request-ID"
	TraceIDHeader   = "X-Trace-ID"
)

// originGuard serves requests without an Origin header, same-origin requests
// and the configured UI origins. Any other cross-origin request gets 403
// before a handler runs, whatever its method or content type.
func originGuard(origins []string) gin.HandlerFunc {
	if len(origins) > 0 {
		return corsFor(origins)
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || isSameOrigin(origin, c.Request.Host) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			newErrorBody(apperrors.NewInvalidRequestError(fmt.Sprintf("origin %q is not allowed", origin))))
	}
}

func isSameOrigin(origin, host string) bool {
	return origin == "http://"+host || origin == "https://"+host
}

// corsFor answers preflights for the given origins. gin-contrib/cors rejects
// other cross-origin requests with 403 and passes same-origin ones through.
func corsFor(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, TraceIDHeader},
		MaxAge:        12 * time.Hour,
	})
}

// tracing starts a server span per request using the global tracer provider
// and echoes the trace id.
func tracing(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		func(c *gin.Context) {
			if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
				c.Header(TraceIDHeader, sc.TraceID().String())
			}
			c.Next()
		},
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request handled", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  c.GetString("request_id"),
		})
	}
}

func recovery(log Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered", map[string]interface{}{
					"panic": fmt.Sprint(r),
					"path":  c.Request.URL.Path,
				})
				stdErr := apperrors.AsStandard(fmt.Errorf("%v", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, newErrorBody(stdErr))
			}
		}()
		c.Next()
	}
}
