package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateMenuItem  = "menu item created successfully"
	MessageSuccessUpdateMenuItem  = "menu item updated successfully"
	MessageSuccessDeleteMenuItem  = "menu item deleted successfully"
	MessageSuccessGetMenu         = "menu retrieved successfully"
	MessageSuccessSetAvailability = "menu availability updated successfully"
	MessageSuccessUploadMenuImage = "menu image uploaded successfully"

	MessageFailedCreateMenuItem  = "failed to create menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedDeleteMenuItem  = "failed to delete menu item"
	MessageFailedGetMenu         = "failed to retrieve menu"
	MessageFailedSetAvailability = "failed to update menu availability"
	MessageFailedUploadMenuImage = "failed to upload menu image"

	ErrMenuItemNotFound       = errors.New("menu item not found")
	ErrMenuItemInactive       = errors.New("menu item is not active")
	ErrVariantNotFound        = errors.New("variant not found for menu item")
	ErrVariantInactive        = errors.New("variant is not active")
	ErrMultipleDefaultVariant = errors.New("only one variant can be the default")
	ErrInvalidPrice           = errors.New("price must be positive")
	ErrInvalidOfferPrice      = errors.New("offer price must be positive and below the base price")
	ErrUnauthorizedMenuScope  = errors.New("menu item belongs to another university")
)

type (
	VariantRequest struct {
		ID        string          `json:"id" validate:"omitempty,uuid"`
		Name      string          `json:"name" validate:"required"`
		Price     decimal.Decimal `json:"price"`
		IsDefault bool            `json:"is_default"`
		IsActive  *bool           `json:"is_active"`
	}

	MenuItemRequest struct {
		Name         string           `json:"name" validate:"required"`
		Description  string           `json:"description" validate:"omitempty,max=1000"`
		Price        decimal.Decimal  `json:"price"`
		OfferPrice   *decimal.Decimal `json:"offer_price"`
		Categories   []string         `json:"categories" validate:"omitempty,dive,required"`
		DietaryFlags []string         `json:"dietary_flags" validate:"omitempty,dive,required"`
		IsActive     *bool            `json:"is_active"`
		Variants     []VariantRequest `json:"variants" validate:"omitempty,dive"`
		UniversityID string           `json:"university_id" validate:"omitempty,uuid"`
	}

	SetAvailabilityRequest struct {
		Date        string `json:"date" validate:"required,datetime=2006-01-02"`
		IsAvailable *bool  `json:"is_available" validate:"required"`
	}

	UploadMenuImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	VariantResponse struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Price     decimal.Decimal `json:"price"`
		IsDefault bool            `json:"is_default"`
		IsActive  bool            `json:"is_active"`
	}

	MenuItemResponse struct {
		ID           string            `json:"id"`
		UniversityID string            `json:"university_id"`
		Name         string            `json:"name"`
		Description  string            `json:"description"`
		Price        decimal.Decimal   `json:"price"`
		OfferPrice   *decimal.Decimal  `json:"offer_price,omitempty"`
		Categories   []string          `json:"categories"`
		DietaryFlags []string          `json:"dietary_flags"`
		ImageURL     string            `json:"image_url,omitempty"`
		IsActive     bool              `json:"is_active"`
		IsAvailable  *bool             `json:"is_available,omitempty"`
		Variants     []VariantResponse `json:"variants"`
		CreatedAt    time.Time         `json:"created_at"`
	}
)
