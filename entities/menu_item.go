package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type MenuItem struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UniversityID uuid.UUID                   `gorm:"type:uuid;index" json:"university_id"`
	Name         string                      `json:"name"`
	Description  string                      `json:"description"`
	Price        decimal.Decimal             `gorm:"type:decimal(10,2)" json:"price"`
	OfferPrice   decimal.NullDecimal         `gorm:"type:decimal(10,2)" json:"offer_price"`
	Categories   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"categories"`
	DietaryFlags datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"dietary_flags"`
	ImageURL     string                      `json:"image_url,omitempty"`
	IsActive     bool                        `json:"is_active"`

	University   *University         `gorm:"foreignKey:UniversityID"`
	Variants     []*MenuVariant      `gorm:"foreignKey:MenuItemID"`
	Availability []*MenuAvailability `gorm:"foreignKey:MenuItemID"`
	Timestamp
}

type MenuVariant struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;index" json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	IsDefault  bool            `json:"is_default"`
	IsActive   bool            `json:"is_active"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
	Timestamp
}

// MenuAvailability marks whether an item is offered on a collection date.
// It is informational; ordering never decrements anything here.
type MenuAvailability struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	MenuItemID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_menu_availability_item_date" json:"menu_item_id"`
	Date        time.Time `gorm:"type:date;uniqueIndex:idx_menu_availability_item_date" json:"date"`
	IsAvailable bool      `json:"is_available"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
	Timestamp
}
