package presenters

import (
	"errors"
	"fmt"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("amount", domain.ErrOutOfRange, "too small"), fiber.StatusBadRequest},
		{domain.ErrInvalidCredentials, fiber.StatusBadRequest},
		{domain.ErrRecipeNameExists, fiber.StatusConflict},
		{domain.ErrFavoriteNotFound, fiber.StatusNotFound},
		{domain.ErrUnauthorizedRecipe, fiber.StatusForbidden},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrTagExists), fiber.StatusConflict},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorStatus(tt.err), tt.err.Error())
	}
}
