package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", NewConflictError("taken"), fiber.StatusConflict},
		{"not found", NewNotFoundError("Post", 7), fiber.StatusNotFound},
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"invalid credentials", NewInvalidCredentialsError(), fiber.StatusUnauthorized},
		{"unauthenticated", NewUnauthenticatedError("login"), fiber.StatusUnauthorized},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewConflictError("taken")), fiber.StatusConflict},
		{"plain", errors.New("plain"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestHasCode(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("create user: %w", NewConflictError("taken"))
	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("x"), CodeConflict))
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection reset")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "Post with ID 3 not found", NewNotFoundError("Post", 3).Error())
}
