package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"snapapp/internal/logging"
	"snapapp/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Set by the gate once a caller is authorized, read back for request logs.
const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "role"
)

// RequestLogger logs every request and recovers from panics.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error(c.Request.Context(), "panic",
					append(requestAttrs(c, start), "error", fmt.Sprintf("%v", recovered), "stack", string(debug.Stack()))...)
				if !c.Writer.Written() {
					response.InternalError(c)
				}
				c.Abort()
				return
			}

			attrs := requestAttrs(c, start)
			for _, err := range c.Errors {
				attrs = append(attrs, "error", err.Error())
			}
			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				log.Error(c.Request.Context(), "request", attrs...)
			case status >= http.StatusBadRequest:
				log.Warn(c.Request.Context(), "request", attrs...)
			default:
				log.Info(c.Request.Context(), "request", attrs...)
			}
		}()

		c.Next()
	}
}

func requestAttrs(c *gin.Context, start time.Time) []any {
	return []any{
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"user_id", c.GetString(ctxUserIDKey),
		"role", c.GetString(ctxRoleKey),
		"request_id", requestID(c),
		"latency", time.Since(start),
	}
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
