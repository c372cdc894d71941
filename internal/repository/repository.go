// Package repository handles all interactions with the database.
//
// It holds the parameterized statements issued through gorm,
// abstracting SQL away from the service layer. Errors are
// returned as the driver produced them; classification happens
// at the HTTP boundary.
package repository
