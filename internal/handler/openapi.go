package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/crm/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIHandler serves the OpenAPI description of the users endpoint.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIDocument writes the embedded document uncached, so updated
// docs show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
}
