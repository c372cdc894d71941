// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/deppfellow/crm/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationFailedMessage is the top-level message of every field-level failure.
const ValidationFailedMessage = "Validation failed"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,email"`)
// - Implement Validate() error that runs validation.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return ValidationFailedMessage
}

var validate = newValidator()

// Struct runs the struct-tag rules of v.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindBody decodes a JSON object request body into payload.
//
// The body must be a JSON object with at least one key. Anything else
// (no body, malformed JSON, an empty object, a scalar, a value of the
// wrong type) becomes a 400 carrying invalidInputMessage. Keys missing
// from the object keep the payload's zero value.
func BindBody(c echo.Context, payload any, invalidInputMessage string) error {
	invalid := errs.NewBadRequestError(invalidInputMessage, nil, nil)

	req := c.Request()
	if req.Body == nil {
		return invalid
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return invalid
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil || len(object) == 0 {
		return invalid
	}

	req.Body = io.NopCloser(bytes.NewReader(body))
	if err := c.Echo().JSONSerializer.Deserialize(c, payload); err != nil {
		return invalid
	}

	return nil
}

// Check runs payload.Validate and converts a failure into a 400 *errs.HTTPError
// with one entry per offending field.
func Check(payload Validatable) error {
	if err := payload.Validate(); err != nil {
		return AsHTTPError(ValidationFailedMessage, err)
	}
	return nil
}

// AsHTTPError converts validator or custom validation errors into a 400
// carrying message and the per-field details.
func AsHTTPError(message string, err error) error {
	if err == nil {
		return nil
	}
	return errs.ValidationError(message, extractValidationError(err)...)
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	switch e := err.(type) {
	case CustomValidationErrors:
		for _, ce := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}

	case validator.ValidationErrors:
		for _, fe := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: strings.ToLower(fe.Field()),
				Error: fieldMessage(fe),
			})
		}

	default:
		// InvalidValidationError: a programming error, not bad input.
		fieldErrors = append(fieldErrors, errs.FieldError{Field: "request", Error: err.Error()})
	}

	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		if fe.Param() == "0" {
			return "must be a positive integer"
		}
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case CalendarDateTag:
		return "must be a valid date in YYYY-MM-DD format"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
