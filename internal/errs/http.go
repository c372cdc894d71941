package errs

import (
	"net/http"
)

// Codes of the error taxonomy. They are the UPPER_SNAKE form of the
// status text, so a client can switch on them without parsing messages.
var (
	CodeBadRequest       = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	CodeNotFound         = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	CodeMethodNotAllowed = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed))
	CodeInternal         = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
	CodeTimeout          = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusGatewayTimeout))
	CodeUnavailable      = MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable))
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := CodeBadRequest
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Message: message,
		Code:    formattedCode,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := CodeNotFound
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Message: message,
		Code:    formattedCode,
		Status:  http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError(message string) *HTTPError {
	return &HTTPError{
		Message: message,
		Code:    CodeMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
	}
}

// NewTimeoutError creates a 504 Gateway Timeout HTTPError, used when the
// per-request deadline expires before the database answers.
func NewTimeoutError() *HTTPError {
	return &HTTPError{
		Message: "Request timed out",
		Code:    CodeTimeout,
		Status:  http.StatusGatewayTimeout,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error:
// driver messages stay in the logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Message: http.StatusText(http.StatusInternalServerError),
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
	}
}

// ValidationError converts a validation failure into a 400 Bad Request HTTPError.
//
//	return errs.ValidationError("Validation failed", fieldErrors...)
func ValidationError(message string, fieldErrors ...FieldError) *HTTPError {
	return NewBadRequestError(message, nil, fieldErrors)
}
