package service

import "errors"

// Sentinel errors for the handler/error-middleware boundary. Persistence
// failures that do not map onto one of these pass through untouched and are
// classified by the central error handler.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrForbidden          = errors.New("forbidden")
	ErrUnsupportedMedia   = errors.New("unsupported image type")
	ErrPayloadTooLarge    = errors.New("payload too large")
)
