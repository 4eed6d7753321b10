package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/presenters"
	"Hostel-Food-Ordering/pkg/cart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CartHandler interface {
		GetCart(c *fiber.Ctx) error
		SaveCart(c *fiber.Ctx) error
		ClearCart(c *fiber.Ctx) error
	}

	cartHandler struct {
		cartService cart.CartService
		validator   *validator.Validate
	}
)

func NewCartHandler(cartService cart.CartService, validator *validator.Validate) CartHandler {
	return &cartHandler{
		cartService: cartService,
		validator:   validator,
	}
}

func (h *cartHandler) GetCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date")
	if date == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCart, domain.ErrInvalidDate)
	}

	res, err := h.cartService.GetCart(c.Context(), userID, date)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCart)
}

func (h *cartHandler) SaveCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SaveCartRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.Date == "" {
		req.Date = c.Query("date")
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveCart, err)
	}

	res, err := h.cartService.SaveCart(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSaveCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveCart)
}

func (h *cartHandler) ClearCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	date := c.Query("date")
	if date == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClearCart, domain.ErrInvalidDate)
	}

	if err := h.cartService.ClearCart(c.Context(), userID, date); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedClearCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessClearCart)
}
