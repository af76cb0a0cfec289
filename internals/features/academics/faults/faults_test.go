package faults

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestWrappersKeepSentinels(t *testing.T) {
	assert.True(t, errors.Is(Malformedf("bad year %q", "9"), ErrMalformedContext))
	assert.True(t, errors.Is(NotFoundf("nothing"), ErrNotFound))
	assert.True(t, errors.Is(Unauthorizedf("nope"), ErrUnauthorized))
	assert.True(t, errors.Is(Invariantf("overlap"), ErrInvariantViolation))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Malformedf("x"), fiber.StatusBadRequest},
		{NotFoundf("x"), fiber.StatusNotFound},
		{Unauthorizedf("x"), fiber.StatusForbidden},
		{ErrDuplicateEntry, fiber.StatusConflict},
		{ErrEditWindowExpired, fiber.StatusConflict},
		{Invariantf("x"), fiber.StatusUnprocessableEntity},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err))
	}
}
