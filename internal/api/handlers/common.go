package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/utils/storage"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func actorFrom(c *fiber.Ctx) domain.Actor {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	universityID, _ := c.Locals("university_id").(string)
	return domain.Actor{
		UserID:       userID,
		Role:         role,
		UniversityID: universityID,
	}
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

var (
	notFoundErrors = []error{
		domain.ErrUserNotFound,
		domain.ErrUniversityNotFound,
		domain.ErrMenuItemNotFound,
		domain.ErrVariantNotFound,
		domain.ErrOrderNotFound,
	}
	unauthorizedErrors = []error{
		domain.ErrInvalidCredentials,
		domain.ErrTokenNotFound,
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
	}
	forbiddenErrors = []error{
		domain.ErrUserNotAllowed,
		domain.ErrAccountPending,
		domain.ErrAccountRejected,
		domain.ErrAccountSuspended,
		domain.ErrCannotManageUser,
		domain.ErrUnauthorizedUserScope,
		domain.ErrUnauthorizedMenuScope,
		domain.ErrUnauthorizedOrder,
	}
	conflictErrors = []error{
		domain.ErrEmailAlreadyExists,
		domain.ErrUniversityAlreadyExists,
		domain.ErrInvalidStatusTransition,
		domain.ErrOrderStatusConflict,
		domain.ErrOrderNotReady,
		domain.ErrOrderAlreadyServed,
		domain.ErrDuplicateRequest,
	}
	unprocessableErrors = []error{
		domain.ErrOrderCutoffPassed,
		domain.ErrOrderNotToday,
		domain.ErrQRNoMatch,
	}
	unavailableErrors = []error{
		domain.ErrCartUnavailable,
		storage.ErrStorageNotConfigured,
	}
)

// statusFor maps service errors onto HTTP status codes. Unknown errors are
// reported as bad requests.
func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case isAny(err, notFoundErrors):
		return fiber.StatusNotFound
	case isAny(err, unauthorizedErrors):
		return fiber.StatusUnauthorized
	case isAny(err, forbiddenErrors):
		return fiber.StatusForbidden
	case isAny(err, conflictErrors):
		return fiber.StatusConflict
	case isAny(err, unprocessableErrors):
		return fiber.StatusUnprocessableEntity
	case isAny(err, unavailableErrors):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrPaymentGatewayFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusBadRequest
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
