package sqlerr

import "github.com/go-sql-driver/mysql"

// Code is a driver independent category of database failure.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	InvalidValue        Code = "invalid_value"
	ValueTooLong        Code = "value_too_long"
	QueryTimeout        Code = "query_timeout"
)

// MySQL server error numbers we classify.
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	erDupEntry                 = 1062
	erBadNullError             = 1048
	erRowIsReferenced2         = 1451
	erNoReferencedRow2         = 1452
	erCheckConstraintViolated  = 3819
	erDataTooLong              = 1406
	erTruncatedWrongValue      = 1292
	erTruncatedWrongValueField = 1366
	erLockWaitTimeout          = 1205
	erQueryTimeout             = 3024
)

// MapCode maps a MySQL error number onto a Code.
func MapCode(number uint16) Code {
	switch number {
	case erDupEntry:
		return UniqueViolation
	case erBadNullError:
		return NotNullViolation
	case erRowIsReferenced2, erNoReferencedRow2:
		return ForeignKeyViolation
	case erCheckConstraintViolated:
		return CheckViolation
	case erDataTooLong:
		return ValueTooLong
	case erTruncatedWrongValue, erTruncatedWrongValueField:
		return InvalidValue
	case erLockWaitTimeout, erQueryTimeout:
		return QueryTimeout
	default:
		return Other
	}
}

// Error is a classified MySQL error.
//
// TableName and ColumnName are recovered from the server message when
// it names them; MySQL has no structured fields for them.
type Error struct {
	Code         Code
	DatabaseCode uint16
	Message      string
	TableName    string
	ColumnName   string
	KeyName      string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// ConvertMySQLError converts a raw *mysql.MySQLError into an *Error.
func ConvertMySQLError(src *mysql.MySQLError) *Error {
	table, column, key := extractNames(src.Message)

	return &Error{
		Code:         MapCode(src.Number),
		DatabaseCode: src.Number,
		Message:      src.Message,
		TableName:    table,
		ColumnName:   column,
		KeyName:      key,
		driverErr:    src,
	}
}
