package domain

import "errors"

var (
	MessageSuccessPaymentNotification = "payment notification processed"
	MessageFailedPaymentNotification  = "failed to process payment notification"

	ErrPaymentGatewayFailed = errors.New("payment gateway request failed")
	ErrPaymentNotVerified   = errors.New("payment notification could not be verified")
)

type MidtransNotificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
