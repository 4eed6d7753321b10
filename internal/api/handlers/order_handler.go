package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/presenters"
	"Hostel-Food-Ordering/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const headerIdempotencyKey = "Idempotency-Key"

type (
	OrderHandler interface {
		QuoteCart(c *fiber.Ctx) error
		PlaceOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		GetOrderStatus(c *fiber.Ctx) error
		GetQRPayload(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error

		UpdateOrderStatus(c *fiber.Ctx) error
		DeleteOrder(c *fiber.Ctx) error

		GetTodayReadyOrders(c *fiber.Ctx) error
		ServeOrder(c *fiber.Ctx) error
		ScanQR(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) QuoteCart(c *fiber.Ctx) error {
	req := new(domain.PlaceOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedQuoteCart, err)
	}

	res, err := h.orderService.QuoteCart(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedQuoteCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessQuoteCart)
}

func (h *orderHandler) PlaceOrder(c *fiber.Ctx) error {
	req := new(domain.PlaceOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPlaceOrder, err)
	}

	res, err := h.orderService.PlaceOrder(c.Context(), actorFrom(c), *req, c.Get(headerIdempotencyKey))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedPlaceOrder, err)
	}

	code := fiber.StatusCreated
	if res.Idempotent {
		code = fiber.StatusOK
	}
	return presenters.SuccessResponse(c, res, code, domain.MessageSuccessPlaceOrder)
}

// GetOrders lists orders visible to the caller: students see their own,
// managers their university, admins everything.
func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := domain.OrderFilter{
		UniversityID: c.Query("university_id"),
		Status:       c.Query("status"),
		Date:         c.Query("date"),
		Page:         page,
		Limit:        limit,
	}

	orders, count, err := h.orderService.GetOrders(c.Context(), actorFrom(c), filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders":     orders,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrder(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) GetOrderStatus(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrderStatus(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) GetQRPayload(c *fiber.Ctx) error {
	res, err := h.orderService.GetQRPayload(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetQRPayload, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetQRPayload)
}

func (h *orderHandler) CancelOrder(c *fiber.Ctx) error {
	req := new(domain.CancelOrderRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelOrder, err)
	}

	res, err := h.orderService.CancelOrder(c.Context(), actorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCancelOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCancelOrder)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateOrderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrderStatus, err)
	}

	res, err := h.orderService.UpdateOrderStatus(c.Context(), actorFrom(c), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateOrderStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orderService.DeleteOrder(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteOrder, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteOrder)
}

func (h *orderHandler) GetTodayReadyOrders(c *fiber.Ctx) error {
	res, err := h.orderService.GetTodayReadyOrders(c.Context(), actorFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) ServeOrder(c *fiber.Ctx) error {
	res, err := h.orderService.ServeOrder(c.Context(), actorFrom(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedServeOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessServeOrder)
}

func (h *orderHandler) ScanQR(c *fiber.Ctx) error {
	req := new(domain.ScanQRRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanQR, err)
	}

	res, err := h.orderService.ScanQR(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedScanQR, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessServeOrder)
}
