package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/presenters"
	"Hostel-Food-Ordering/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		GetMenuItems(c *fiber.Ctx) error
		GetStudentMenu(c *fiber.Ctx) error
		SetAvailability(c *fiber.Ctx) error
		UploadMenuImage(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	res, err := h.menuService.CreateMenuItem(c.Context(), actorFrom(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.Context(), actorFrom(c), itemID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	if err := h.menuService.DeleteMenuItem(c.Context(), actorFrom(c), itemID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteMenuItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	res, err := h.menuService.GetMenuItems(c.Context(), actorFrom(c), c.Query("university_id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *menuHandler) GetStudentMenu(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMenu, domain.ErrInvalidDate)
	}

	res, err := h.menuService.GetStudentMenu(c.Context(), actorFrom(c), date)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *menuHandler) SetAvailability(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.SetAvailabilityRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetAvailability, err)
	}

	if err := h.menuService.SetAvailability(c.Context(), actorFrom(c), itemID, *req); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSetAvailability, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetAvailability)
}

func (h *menuHandler) UploadMenuImage(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.UploadMenuImageRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadMenuImage, err)
	}

	res, err := h.menuService.UploadMenuImage(c.Context(), actorFrom(c), itemID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadMenuImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadMenuImage)
}
