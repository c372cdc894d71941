package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the request key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized
// directly as the response body:
//
//	{"error": "Validation failed", "code": "BAD_REQUEST", "status": 400, "errors": [...]}
//
// Fields:
//   - Message: human-friendly message, sent under the "error" key.
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Status: HTTP status code.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Message string       `json:"error"`
	Code    string       `json:"code"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError with the same Code.
//
// A target with an empty Code matches any *HTTPError, so
// errors.Is(err, &HTTPError{}) asks "is this an HTTP error at all".
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Message: message,
		Code:    e.Code,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
