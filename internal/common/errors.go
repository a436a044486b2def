// Package common defines shared constants and sentinel errors used across
// the course manager layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors: a required field is empty or two inputs disagree.
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrorUserExists         = errors.New("user with this email already exists")
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorNotLoggedIn        = errors.New("not logged in")
	ErrorForbidden          = errors.New("admin access required")
)
