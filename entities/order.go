package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	UniversityID       uuid.UUID       `gorm:"type:uuid;index" json:"university_id"`
	OrderNumber        string          `gorm:"uniqueIndex" json:"order_number"`
	OrderDate          time.Time       `gorm:"type:date;index" json:"order_date"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	PaymentMethod      string          `json:"payment_method"` // CASH, ONLINE
	PaymentStatus      string          `json:"payment_status"` // PENDING, PAID, FAILED
	PaymentURL         string          `json:"payment_url,omitempty"`
	Status             string          `gorm:"index" json:"status"`
	Notes              string          `json:"notes,omitempty"`
	RejectionReason    string          `json:"rejection_reason,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	ApprovedAt         *time.Time      `json:"approved_at,omitempty"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
	Version            int             `gorm:"not null;default:0" json:"version"`

	User       *User        `gorm:"foreignKey:UserID"`
	University *University  `gorm:"foreignKey:UniversityID"`
	Items      []*OrderItem `gorm:"foreignKey:OrderID"`
	Timestamp
}

type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	MenuItemID  uuid.UUID       `gorm:"type:uuid" json:"menu_item_id"`
	VariantID   *uuid.UUID      `gorm:"type:uuid" json:"variant_id,omitempty"`
	Name        string          `json:"name"`
	VariantName string          `json:"variant_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`

	Order    *Order       `gorm:"foreignKey:OrderID"`
	MenuItem *MenuItem    `gorm:"foreignKey:MenuItemID"`
	Variant  *MenuVariant `gorm:"foreignKey:VariantID"`
	Timestamp
}
