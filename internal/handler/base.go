package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/crm/internal/middleware"
	"github.com/deppfellow/crm/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is an endpoint that returns a response body or an error.
type HandlerFunc func(c echo.Context) (any, error)

// HandlerFuncNoContent is an endpoint whose success has no body.
type HandlerFuncNoContent func(c echo.Context) error

// MessageResponse is the body of a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseHandler defines how a successful result is written and how it is
// described to logs and traces.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

// NoContentResponseHandler writes responses with no body (typically 204).
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware
}

// handleRequest is the shared execution pipeline for all handlers:
// structured logging, New Relic attributes and error reporting,
// timing and response writing. Errors are returned untouched so the
// global error handler shapes the response.
func handleRequest(
	c echo.Context,
	handler func(c echo.Context) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", method+" "+route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	result, err := handler(c)
	handlerDuration := time.Since(start)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a handler with error handling, logging, metrics, and tracing.
func Handle(h Handler, handler HandlerFunc, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, handler, JSONResponseHandler{status: status})
	}
}

// HandleNoContent is Handle for endpoints that don't return content.
func HandleNoContent(h Handler, handler HandlerFuncNoContent, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, func(c echo.Context) (any, error) {
			return nil, handler(c)
		}, NoContentResponseHandler{status: status})
	}
}
