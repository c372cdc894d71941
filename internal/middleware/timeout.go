package middleware

import (
	"context"

	"github.com/deppfellow/crm/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
)

// RequestTimeout bounds every request with the configured deadline.
//
// The deadline travels in the request context down to the database
// statement; when it expires the driver aborts the statement and the
// request fails with a 504.
func (global *GlobalMiddlewares) RequestTimeout() echo.MiddlewareFunc {
	return middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: global.server.Config.Server.RequestTimeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return errs.NewTimeoutError()
			}
			return err
		},
	})
}
