package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/presenters"
	"Hostel-Food-Ordering/pkg/midtrans"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	MidtransHandler interface {
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	midtransHandler struct {
		midtransService midtrans.MidtransService
		validator       *validator.Validate
	}
)

func NewMidtransHandler(midtransService midtrans.MidtransService, validator *validator.Validate) MidtransHandler {
	return &midtransHandler{
		midtransService: midtransService,
		validator:       validator,
	}
}

func (h *midtransHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.MidtransNotificationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPaymentNotification, err)
	}

	status, err := h.midtransService.HandleNotification(c.Context(), *req)
	if err != nil {
		log.Warnf("midtrans notification for %s rejected: %v", req.OrderID, err)
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedPaymentNotification, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"order_number":   req.OrderID,
		"payment_status": status,
	}, fiber.StatusOK, domain.MessageSuccessPaymentNotification)
}
