package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/utils/storage"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrOrderNotFound, fiber.StatusNotFound},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrAccountPending, fiber.StatusForbidden},
		{domain.ErrUnauthorizedMenuScope, fiber.StatusForbidden},
		{domain.ErrInvalidStatusTransition, fiber.StatusConflict},
		{domain.ErrOrderStatusConflict, fiber.StatusConflict},
		{domain.ErrQRNoMatch, fiber.StatusUnprocessableEntity},
		{storage.ErrStorageNotConfigured, fiber.StatusServiceUnavailable},
		{domain.ErrPaymentGatewayFailed, fiber.StatusBadGateway},
		{domain.ErrInvalidQuantity, fiber.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.ErrOrderNotFound), fiber.StatusNotFound},
		{errors.New("anything else"), fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, statusFor(tc.err), tc.err.Error())
	}
}
