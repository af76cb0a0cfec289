// Package faults is the error taxonomy shared by the academic features.
// Services wrap these sentinels; controllers translate them to HTTP.
package faults

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrMalformedContext: input cannot be normalized into a class
	// context. Recoverable only by the caller correcting input.
	ErrMalformedContext = errors.New("malformed class context")

	// ErrNotFound: no resolution strategy produced a roster, or a
	// referenced entity does not exist. Surfaced as-is; a roster is
	// never fabricated.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: binding validator denial. Never partial.
	ErrUnauthorized = errors.New("faculty not authorized for class")

	// ErrDuplicateEntry: store uniqueness race; recovered locally by
	// converting the insert into an update.
	ErrDuplicateEntry = errors.New("entry already exists")

	// ErrEditWindowExpired: policy boundary, never silently bypassed.
	ErrEditWindowExpired = errors.New("attendance edit window has expired")

	// ErrInvariantViolation: inconsistent attendance sets or enrollment
	// pairing. Always rejected before any write.
	ErrInvariantViolation = errors.New("invariant violation")
)

func Malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedContext, fmt.Sprintf(format, args...))
}

func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

func Invariantf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// HTTPStatus maps taxonomy errors onto response codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMalformedContext):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrDuplicateEntry):
		return fiber.StatusConflict
	case errors.Is(err, ErrEditWindowExpired):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvariantViolation):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
