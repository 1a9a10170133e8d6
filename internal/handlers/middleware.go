package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// requestMiddleware records every request in metrics and the log. Routes are
// labelled by their pattern so ids never reach metric labels.
func (h *Handler) requestMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}
	status := c.Writer.Status()
	elapsed := time.Since(start)
	h.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)

	if h.log == nil {
		return
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"path", c.Request.URL.Path,
		"status", status,
		"latency_ms", elapsed.Milliseconds(),
	}
	switch {
	case status >= 500:
		h.log.Errorw("http_request", fields...)
	case route == "/health" || route == "/metrics":
		h.log.Debugw("http_request", fields...)
	default:
		h.log.Infow("http_request", fields...)
	}
}
