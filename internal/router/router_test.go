package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/crm/internal/config"
	"github.com/deppfellow/crm/internal/errs"
	"github.com/deppfellow/crm/internal/handler"
	"github.com/deppfellow/crm/internal/repository"
	"github.com/deppfellow/crm/internal/router"
	"github.com/deppfellow/crm/internal/service"
	"github.com/deppfellow/crm/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endpoint = "/api/users"

const annJSON = `{"first_name":"Ann","last_name":"Lee","email":"ann.lee@x.com","birthdate":"1990-01-01"}`

func newRouter(t *testing.T, opts ...func(*config.Config)) *echo.Echo {
	t.Helper()

	s := testutil.NewServer(t, opts...)
	services := service.NewServices(s, repository.NewRepositories(s))
	return router.NewRouter(s, handler.NewHandlers(s, services))
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	if m, ok := body["message"].(string); ok {
		return m
	}
	m, _ := body["error"].(string)
	return m
}

func search(t *testing.T, e *echo.Echo, target string) []map[string]any {
	t.Helper()

	rec := do(e, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	return rows
}

func TestOptions(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodOptions, endpoint, "")
	assert.GreaterOrEqual(t, rec.Code, 200)
	assert.Less(t, rec.Code, 300)
	assert.Empty(t, rec.Body.String())
}

func TestUnknownMethod(t *testing.T) {
	e := newRouter(t)

	for _, method := range []string{http.MethodPatch, http.MethodHead, "PROPFIND"} {
		rec := do(e, method, endpoint, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}

	rec := do(e, http.MethodPatch, endpoint, annJSON)
	assert.Equal(t, "Invalid request method", message(t, rec))
}

func TestCreateSearchUpdateDelete(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodPost, endpoint, annJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	assert.Equal(t, "User added successfully", message(t, rec))

	rows := search(t, e, endpoint+"?search=ANN")
	require.Len(t, rows, 1)

	row := rows[0]
	id, ok := row["id"].(string)
	require.True(t, ok, "id is rendered as a string")
	assert.Equal(t, "Ann", row["first_name"])
	assert.Equal(t, "Lee", row["last_name"])
	assert.Equal(t, "ann.lee@x.com", row["email"])
	assert.Equal(t, "1990-01-01", row["birth_date"])

	rec = do(e, http.MethodPut, endpoint+"?id="+id,
		`{"first_name":"Anna","last_name":"Lee","email":"anna@x.com","birthdate":"1991-2-3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully", message(t, rec))

	rows = search(t, e, endpoint+"?search=anna@x.com")
	require.Len(t, rows, 1)
	assert.Equal(t, "Anna", rows[0]["first_name"])
	assert.Equal(t, "1991-02-03", rows[0]["birth_date"])

	rec = do(e, http.MethodDelete, endpoint+"?id="+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", message(t, rec))

	assert.Empty(t, search(t, e, endpoint))
}

func TestSearchWithoutTermReturnsEveryRow(t *testing.T) {
	e := newRouter(t)

	require.Equal(t, http.StatusOK, do(e, http.MethodPost, endpoint, annJSON).Code)
	require.Equal(t, http.StatusOK, do(e, http.MethodPost, endpoint,
		`{"first_name":"Bob","last_name":"Stone","email":"bob@x.com","birthdate":"1985-06-15"}`).Code)

	assert.Len(t, search(t, e, endpoint), 2)
	assert.Len(t, search(t, e, endpoint+"?search="), 2)

	rec := do(e, http.MethodGet, endpoint+"?search=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestInvalidInput(t *testing.T) {
	e := newRouter(t)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		message string
	}{
		{"post without body", http.MethodPost, endpoint, "", "Invalid input for POST request"},
		{"post malformed body", http.MethodPost, endpoint, `{"first_name":`, "Invalid input for POST request"},
		{"post empty object", http.MethodPost, endpoint, `{}`, "Invalid input for POST request"},
		{"put without id", http.MethodPut, endpoint, annJSON, "Invalid input for PUT request"},
		{"put without body", http.MethodPut, endpoint + "?id=1", "", "Invalid input for PUT request"},
		{"delete without id", http.MethodDelete, endpoint, "", "Invalid input for DELETE request"},
		{"delete zero id", http.MethodDelete, endpoint + "?id=0", "", "User ID must be a positive integer."},
		{"delete negative id", http.MethodDelete, endpoint + "?id=-3", "", "User ID must be a positive integer."},
		{"delete non-numeric id", http.MethodDelete, endpoint + "?id=abc", "", "User ID must be a positive integer."},
		{"put zero id", http.MethodPut, endpoint + "?id=0", annJSON, "User ID must be a positive integer."},
		{"post invalid email", http.MethodPost, endpoint,
			`{"first_name":"Ann","last_name":"Lee","email":"not-an-email","birthdate":"1990-01-01"}`, "Validation failed"},
		{"post impossible date", http.MethodPost, endpoint,
			`{"first_name":"Ann","last_name":"Lee","email":"ann@x.com","birthdate":"2021-02-30"}`, "Validation failed"},
		{"post missing key", http.MethodPost, endpoint,
			`{"last_name":"Lee","email":"ann@x.com","birthdate":"1990-01-01"}`, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, message(t, rec))
		})
	}

	assert.Empty(t, search(t, e, endpoint), "no invalid request reached storage")
}

func TestValidationErrorBody(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodPost, endpoint,
		`{"first_name":"","last_name":"Lee","email":"ann@x.com","birthdate":"2021-13-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "first_name", Error: "is required"},
		{Field: "birthdate", Error: "must be a valid date in YYYY-MM-DD format"},
	}, body.Errors)
}

func TestMissingIDIsNoopByDefault(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodPut, endpoint+"?id=999999", annJSON)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, endpoint+"?id=999999", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, search(t, e, endpoint))
}

func TestMissingIDReported(t *testing.T) {
	e := newRouter(t, func(cfg *config.Config) {
		cfg.Users.ReportMissing = true
	})

	rec := do(e, http.MethodPut, endpoint+"?id=999999", annJSON)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", message(t, rec))

	rec = do(e, http.MethodDelete, endpoint+"?id=999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomEndpoint(t *testing.T) {
	e := newRouter(t, func(cfg *config.Config) {
		cfg.Server.Endpoint = "/v1/users"
	})

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/users", "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, endpoint, "").Code)
}

func TestCORSHeaders(t *testing.T) {
	e := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, endpoint, nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStatus(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])

	disabled := newRouter(t, func(cfg *config.Config) {
		cfg.Health.Enabled = false
	})
	assert.Equal(t, http.StatusNotFound, do(disabled, http.MethodGet, "/status", "").Code)
}

func TestStatusUnhealthy(t *testing.T) {
	s := testutil.NewServer(t)
	services := service.NewServices(s, repository.NewRepositories(s))
	e := router.NewRouter(s, handler.NewHandlers(s, services))

	require.NoError(t, s.DB.Close())

	rec := do(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	e := newRouter(t)

	rec := do(e, http.MethodGet, "/docs/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], endpoint)
}
