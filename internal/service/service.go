// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// Every mutating operation validates its input here, before
// a statement is issued, so the rules hold for any caller
// and not only for the HTTP handler.
package service
