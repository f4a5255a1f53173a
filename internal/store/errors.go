package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Duplicate-key errors surfaced when the database rejects an insert that
// raced past the application-level pre-check.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// Postgres unique violation error code.
const uniqueViolationCode = "23505"

// mapUniqueViolation translates a unique-constraint violation into the
// matching duplicate sentinel, based on the constraint name from the
// migrations. Other errors pass through unchanged.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolationCode {
		return err
	}
	switch pqErr.Constraint {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_email_key":
		return ErrDuplicateEmail
	}
	return err
}
