package sqlerr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/crm/internal/errs"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	// Duplicate entry 'a@b.c' for key 'users.email'
	keyPattern = regexp.MustCompile(`for key '([^']+)'`)

	// Column 'first_name' cannot be null
	// Data too long for column 'email' at row 1
	// Incorrect date value: '2021-02-30' for column 'birth_date' at row 1
	columnPattern = regexp.MustCompile(`[Cc]olumn '([^']+)'`)

	// ... a foreign key constraint fails (`crm`.`notes`, CONSTRAINT ...
	fkTablePattern = regexp.MustCompile("constraint fails \\(`[^`]+`\\.`([^`]+)`")
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// Behavior:
//   - If err can be unwrapped into *sqlerr.Error, return its Code.
//   - If err can be unwrapped into *mysql.MySQLError, map its number.
//   - Otherwise return sqlerr.Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return MapCode(myErr.Number)
	}

	return Other
}

// extractNames pulls table, column and key names out of a server message.
func extractNames(message string) (table, column, key string) {
	if m := keyPattern.FindStringSubmatch(message); len(m) > 1 {
		key = m[1]
		// MySQL 8 qualifies the key with its table: users.email
		if t, k, found := strings.Cut(key, "."); found {
			table = t
			key = k
		}
	}

	if m := columnPattern.FindStringSubmatch(message); len(m) > 1 {
		column = m[1]
	}

	if m := fkTablePattern.FindStringSubmatch(message); len(m) > 1 {
		table = m[1]
	}

	return table, column, key
}

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	users + UniqueViolation => USER_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidValue, ValueTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
	fieldName := humanizeText(sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced once the key name tells us the column.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case ValueTooLong:
		if fieldName == "" {
			return "One or more values are too long"
		}
		return fmt.Sprintf("The %s is too long", fieldName)

	case CheckViolation, InvalidValue:
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with "_id", use that base name ("user_id" -> "User").
//  2. Otherwise use table name, singularized if it ends with "s".
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case.
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique key name.
//
// It supports:
//
//  1. "<column>"                      (MySQL default index name)
//  2. "unique_<table>_<column>"       -> "<column>"
//  3. "<table>_<column>_(key|ukey)"   -> "<column>"
//  4. "idx_<table>_<column>"          -> "<column>" (gorm uniqueIndex)
func extractColumnForUniqueViolation(keyName string) string {
	if keyName == "" || keyName == "PRIMARY" {
		return ""
	}

	if strings.HasPrefix(keyName, "unique_") || strings.HasPrefix(keyName, "idx_") {
		parts := strings.Split(keyName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	re := regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	if matches := re.FindStringSubmatch(keyName); len(matches) > 1 {
		return matches[1]
	}

	if !strings.Contains(keyName, "_") {
		return keyName
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If the request deadline expired: errs.NewTimeoutError (504)
//   - If *mysql.MySQLError: mapped into errs.NewBadRequestError, errs.NewTimeoutError
//     or errs.NewInternalServerError
//   - If ErrRecordNotFound/ErrNoRows: mapped to errs.NewNotFoundError
//   - Otherwise: errs.NewInternalServerError
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewTimeoutError()
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		sqlErr := ConvertMySQLError(myErr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.KeyName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		case NotNullViolation, ValueTooLong, InvalidValue, CheckViolation:
			var fieldErrors []errs.FieldError
			if sqlErr.ColumnName != "" {
				fieldErrors = []errs.FieldError{
					{
						Field: strings.ToLower(sqlErr.ColumnName),
						Error: fieldMessage(sqlErr.Code),
					},
				}
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

		case QueryTimeout:
			return errs.NewTimeoutError()

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}

func fieldMessage(code Code) string {
	switch code {
	case NotNullViolation:
		return "is required"
	case ValueTooLong:
		return "is too long"
	default:
		return "is invalid"
	}
}
