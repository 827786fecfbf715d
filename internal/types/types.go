// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and export can all import types without depending
// on each other.
package types

// Contact is a persisted contact record.
//
// ID is generated by the store on creation and never changes afterwards.
// The other fields were valid at the time of the last write.
type Contact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Bookmarked bool   `json:"bookmarked"`
}

// ContactInput is the body accepted by create and update.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field is read from the request body.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" means the field must be non-empty; "email"
//     means the value must be a syntactically valid address.
//
// Update takes the same full shape as create, so an omitted bookmarked
// resets the stored flag to false.
type ContactInput struct {
	Name       string `json:"name"       validate:"required"`
	Phone      string `json:"phone"      validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Bookmarked bool   `json:"bookmarked"`
}
