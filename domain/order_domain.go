package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusServed    = "SERVED"
	OrderStatusRejected  = "REJECTED"
	OrderStatusCancelled = "CANCELLED"

	PaymentMethodCash   = "CASH"
	PaymentMethodOnline = "ONLINE"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

var (
	MessageSuccessQuoteCart         = "cart priced successfully"
	MessageSuccessPlaceOrder        = "order placed successfully"
	MessageSuccessGetOrders         = "orders retrieved successfully"
	MessageSuccessGetOrder          = "order retrieved successfully"
	MessageSuccessUpdateOrderStatus = "order status updated successfully"
	MessageSuccessCancelOrder       = "order cancelled successfully"
	MessageSuccessDeleteOrder       = "order deleted successfully"
	MessageSuccessServeOrder        = "order marked as served"
	MessageSuccessGetQRPayload      = "order QR payload generated successfully"

	MessageFailedQuoteCart         = "failed to price cart"
	MessageFailedPlaceOrder        = "failed to place order"
	MessageFailedGetOrders         = "failed to retrieve orders"
	MessageFailedGetOrder          = "failed to retrieve order"
	MessageFailedUpdateOrderStatus = "failed to update order status"
	MessageFailedCancelOrder       = "failed to cancel order"
	MessageFailedDeleteOrder       = "failed to delete order"
	MessageFailedServeOrder        = "failed to serve order"
	MessageFailedScanQR            = "failed to process scanned QR code"
	MessageFailedGetQRPayload      = "failed to generate order QR payload"

	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrOrderCutoffPassed       = errors.New("ordering for this date has closed")
	ErrOrderNotFound           = errors.New("order not found")
	ErrUnauthorizedOrder       = errors.New("unauthorized access to order")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderStatusConflict     = errors.New("order was modified concurrently, reload and retry")
	ErrOrderNotReady           = errors.New("order is not ready to be served")
	ErrOrderAlreadyServed      = errors.New("order has already been served")
	ErrOrderNotToday           = errors.New("order is not for collection today")
	ErrQRNoMatch               = errors.New("scanned code does not match any ready order for today")
	ErrInvalidQRPayload        = errors.New("invalid QR payload")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrDuplicateRequest        = errors.New("a request with this idempotency key is still being processed")
)

type (
	CartLine struct {
		MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
		VariantID  string `json:"variant_id" validate:"omitempty,uuid"`
		Quantity   int    `json:"quantity" validate:"required,min=1"`
	}

	PlaceOrderRequest struct {
		OrderDate     string           `json:"order_date" validate:"required,datetime=2006-01-02"`
		Items         []CartLine       `json:"items" validate:"required,min=1,dive"`
		PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=CASH ONLINE"`
		Notes         string           `json:"notes" validate:"omitempty,max=500"`
		ClientTotal   *decimal.Decimal `json:"client_total"`
	}

	QuoteLine struct {
		MenuItemID  string          `json:"menu_item_id"`
		VariantID   string          `json:"variant_id,omitempty"`
		Name        string          `json:"name"`
		VariantName string          `json:"variant_name,omitempty"`
		Quantity    int             `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
		LineTotal   decimal.Decimal `json:"line_total"`
	}

	OrderQuote struct {
		OrderDate   string          `json:"order_date"`
		Cutoff      time.Time       `json:"cutoff"`
		Lines       []QuoteLine     `json:"lines"`
		Subtotal    decimal.Decimal `json:"subtotal"`
		TaxAmount   decimal.Decimal `json:"tax_amount"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}

	OrderItemResponse struct {
		ID          string          `json:"id"`
		MenuItemID  string          `json:"menu_item_id"`
		VariantID   string          `json:"variant_id,omitempty"`
		Name        string          `json:"name"`
		VariantName string          `json:"variant_name,omitempty"`
		Quantity    int             `json:"quantity"`
		Price       decimal.Decimal `json:"price"`
	}

	OrderResponse struct {
		ID                 string              `json:"id"`
		OrderNumber        string              `json:"order_number"`
		UserID             string              `json:"user_id"`
		StudentName        string              `json:"student_name,omitempty"`
		UniversityID       string              `json:"university_id"`
		OrderDate          string              `json:"order_date"`
		Status             string              `json:"status"`
		Subtotal           decimal.Decimal     `json:"subtotal"`
		TaxAmount          decimal.Decimal     `json:"tax_amount"`
		TotalAmount        decimal.Decimal     `json:"total_amount"`
		PaymentMethod      string              `json:"payment_method"`
		PaymentStatus      string              `json:"payment_status"`
		PaymentURL         string              `json:"payment_url,omitempty"`
		Notes              string              `json:"notes,omitempty"`
		RejectionReason    string              `json:"rejection_reason,omitempty"`
		CancellationReason string              `json:"cancellation_reason,omitempty"`
		ApprovedAt         *time.Time          `json:"approved_at,omitempty"`
		CompletedAt        *time.Time          `json:"completed_at,omitempty"`
		Version            int                 `json:"version"`
		Items              []OrderItemResponse `json:"items"`
		CreatedAt          time.Time           `json:"created_at"`
		UpdatedAt          time.Time           `json:"updated_at"`
	}

	PlaceOrderResponse struct {
		Order      OrderResponse `json:"order"`
		PaymentURL string        `json:"payment_url,omitempty"`
		Idempotent bool          `json:"idempotent"`
	}

	OrderStatusResponse struct {
		OrderID      string    `json:"order_id"`
		UserID       string    `json:"-"`
		UniversityID string    `json:"-"`
		Status       string    `json:"status"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	OrderFilter struct {
		UserID       string
		UniversityID string
		Status       string
		Date         string
		Page         int
		Limit        int
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=APPROVED PREPARING READY SERVED REJECTED CANCELLED"`
		Reason string `json:"reason" validate:"omitempty,max=255"`
		// Version, when set, must equal the version the operator last saw.
		Version *int `json:"version" validate:"omitempty,min=0"`
	}

	CancelOrderRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=255"`
	}

	QRItem struct {
		Name        string `json:"name"`
		VariantName string `json:"variantName,omitempty"`
		Quantity    int    `json:"quantity"`
	}

	// QRPayload is the JSON encoded into the collection QR code.
	QRPayload struct {
		OrderID     string          `json:"orderId"`
		OrderNumber string          `json:"orderNumber"`
		StudentName string          `json:"studentName"`
		TotalAmount decimal.Decimal `json:"totalAmount"`
		Status      string          `json:"status"`
		Timestamp   string          `json:"timestamp"`
		Items       []QRItem        `json:"items"`
	}

	ScanQRRequest struct {
		Payload string `json:"payload" validate:"required"`
	}
)
