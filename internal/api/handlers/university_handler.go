package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/api/presenters"
	"Hostel-Food-Ordering/pkg/university"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UniversityHandler interface {
		CreateUniversity(c *fiber.Ctx) error
		GetUniversities(c *fiber.Ctx) error
	}

	universityHandler struct {
		universityService university.UniversityService
		validator         *validator.Validate
	}
)

func NewUniversityHandler(universityService university.UniversityService, validator *validator.Validate) UniversityHandler {
	return &universityHandler{
		universityService: universityService,
		validator:         validator,
	}
}

func (h *universityHandler) CreateUniversity(c *fiber.Ctx) error {
	req := new(domain.CreateUniversityRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateUniversity, err)
	}

	res, err := h.universityService.CreateUniversity(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateUniversity, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateUniversity)
}

func (h *universityHandler) GetUniversities(c *fiber.Ctx) error {
	res, err := h.universityService.GetUniversities(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUniversities, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUniversities)
}
