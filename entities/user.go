package entities

import (
	"github.com/google/uuid"
)

type University struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `json:"name"`
	Code string    `gorm:"uniqueIndex" json:"code"`

	Users     []*User     `gorm:"foreignKey:UniversityID"`
	MenuItems []*MenuItem `gorm:"foreignKey:UniversityID"`
	Timestamp
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	Password     string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	RoomNumber   string     `json:"room_number,omitempty"`
	Role         string     `gorm:"index" json:"role"`   // STUDENT, MANAGER, ADMIN, CATERER
	Status       string     `gorm:"index" json:"status"` // PENDING, APPROVED, REJECTED, SUSPENDED
	StatusReason string     `json:"status_reason,omitempty"`
	UniversityID *uuid.UUID `gorm:"type:uuid;index" json:"university_id,omitempty"`

	University *University `gorm:"foreignKey:UniversityID"`
	Timestamp
}
