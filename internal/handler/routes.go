package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
// Only GET and POST are registered on the wildcard: those are the two
// methods the front-end uses against the backend. Anything else gets 405.
func RegisterRoutes(e *echo.Echo, proxy *ProxyHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/proxy/status", health.Status)

	e.GET("/api/backend/*", proxy.Handle)
	e.POST("/api/backend/*", proxy.Handle)
}
