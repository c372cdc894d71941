// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error numbers from the MySQL driver and
// converts them into user-friendly messages (e.g., converting
// a "duplicate entry" into a "Bad Request" error). Anything it
// cannot classify becomes a generic 500 without driver details.
package sqlerr
