package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Transition errors
	ErrNoPendingRequest = errors.New("no pending moderator request")
	ErrInvalidStatus    = errors.New("invalid status for this transition")
	ErrImmutableField   = errors.New("field cannot be changed")
	ErrEmailInUse       = errors.New("email already in use")
)
