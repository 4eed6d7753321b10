package domain

import "errors"

var (
	MessageSuccessGetCart   = "cart retrieved successfully"
	MessageSuccessSaveCart  = "cart saved successfully"
	MessageSuccessClearCart = "cart cleared successfully"

	MessageFailedGetCart   = "failed to retrieve cart"
	MessageFailedSaveCart  = "failed to save cart"
	MessageFailedClearCart = "failed to clear cart"

	ErrCartUnavailable = errors.New("cart storage unavailable")
)

type (
	SaveCartRequest struct {
		Date  string     `json:"date" validate:"required,datetime=2006-01-02"`
		Items []CartLine `json:"items" validate:"omitempty,dive"`
	}

	CartResponse struct {
		Date  string     `json:"date"`
		Items []CartLine `json:"items"`
	}
)
