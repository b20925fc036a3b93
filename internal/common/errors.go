// Package common defines sentinel errors and small helpers shared by all
// docsim layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrorDuplicateKey = errors.New("duplicate key")

	// Auth errors. ErrorInvalidCredentials deliberately covers both
	// "no such user" and "wrong password".
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorNotAuthenticated   = errors.New("not authenticated")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")
	ErrorInternal   = errors.New("internal error")
)
