package services

import "errors"

// Errors surfaced by the use-case layer. Handlers translate these into
// flash notices, redirects, or a 404.
var (
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and contain uppercase, lowercase, and numbers")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidDate        = errors.New("invalid date format, use YYYY-MM-DD")
	ErrForbidden          = errors.New("task belongs to another user")
)
