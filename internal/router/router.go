// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/crm/internal/handler"
	"github.com/deppfellow/crm/internal/middleware"
	"github.com/deppfellow/crm/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain,
// the system routes and the users endpoint.
//
// Order matters: the request id exists before the logger is built, the
// New Relic transaction exists before the logger and the tracing
// attributes read it, and the deadline wraps only the handler.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.RequestTimeout(),
	)

	registerSystemRoutes(router, s, h)

	router.Any(s.Config.Server.Endpoint, h.Users.ServeUsers)

	return router
}
