package handler

import (
	"net/http"
	"strconv"

	"github.com/deppfellow/crm/internal/errs"
	"github.com/deppfellow/crm/internal/server"
	"github.com/deppfellow/crm/internal/service"
	"github.com/deppfellow/crm/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	invalidPostMessage   = "Invalid input for POST request"
	invalidPutMessage    = "Invalid input for PUT request"
	invalidDeleteMessage = "Invalid input for DELETE request"
	invalidMethodMessage = "Invalid request method"
)

// UserHandler serves the users endpoint. One path answers every verb;
// the method selects the operation.
type UserHandler struct {
	Handler
	users   *service.UserService
	methods map[string]echo.HandlerFunc
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	h := &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}

	h.methods = map[string]echo.HandlerFunc{
		http.MethodOptions: HandleNoContent(h.Handler, h.preflight, http.StatusNoContent),
		http.MethodGet:     Handle(h.Handler, h.search, http.StatusOK),
		http.MethodPost:    Handle(h.Handler, h.create, http.StatusOK),
		http.MethodPut:     Handle(h.Handler, h.update, http.StatusOK),
		http.MethodDelete:  Handle(h.Handler, h.delete, http.StatusOK),
	}

	return h
}

// ServeUsers dispatches on the request method; any other verb is a 405.
func (h *UserHandler) ServeUsers(c echo.Context) error {
	handle, ok := h.methods[c.Request().Method]
	if !ok {
		return errs.NewMethodNotAllowedError(invalidMethodMessage)
	}
	return handle(c)
}

func (h *UserHandler) preflight(c echo.Context) error {
	return nil
}

// search treats an absent search parameter as "".
func (h *UserHandler) search(c echo.Context) (any, error) {
	return h.users.Search(c.Request().Context(), c.QueryParam("search"))
}

func (h *UserHandler) create(c echo.Context) (any, error) {
	var input service.UserInput
	if err := validation.BindBody(c, &input, invalidPostMessage); err != nil {
		return nil, err
	}

	if _, err := h.users.Create(c.Request().Context(), input); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "User added successfully"}, nil
}

func (h *UserHandler) update(c echo.Context) (any, error) {
	rawID, ok := queryID(c)
	if !ok {
		return nil, errs.NewBadRequestError(invalidPutMessage, nil, nil)
	}

	var input service.UserInput
	if err := validation.BindBody(c, &input, invalidPutMessage); err != nil {
		return nil, err
	}

	if err := h.users.Update(c.Request().Context(), parseID(rawID), input); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "User updated successfully"}, nil
}

func (h *UserHandler) delete(c echo.Context) (any, error) {
	rawID, ok := queryID(c)
	if !ok {
		return nil, errs.NewBadRequestError(invalidDeleteMessage, nil, nil)
	}

	if err := h.users.Delete(c.Request().Context(), parseID(rawID)); err != nil {
		return nil, err
	}

	return MessageResponse{Message: "User deleted successfully"}, nil
}

// queryID reports whether the id parameter is present at all.
func queryID(c echo.Context) (string, bool) {
	values, ok := c.QueryParams()["id"]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseID maps anything that is not a decimal integer to 0, which the
// service rejects as not positive.
func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
