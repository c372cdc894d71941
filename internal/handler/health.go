package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/crm/internal/middleware"
	"github.com/deppfellow/crm/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler exposes the endpoint that load balancers and uptime
// monitors use to verify the service and its database are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.server.Config.Health.Timeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	checks["database"] = map[string]any{
		"status":        "healthy",
		"response_time": time.Since(dbStart).String(),
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
