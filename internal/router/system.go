package router

import (
	"github.com/deppfellow/crm/internal/handler"
	"github.com/deppfellow/crm/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the users API.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if s.Config.Health.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
}
