package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister         = "registration submitted, waiting for approval"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetUser          = "user retrieved successfully"
	MessageSuccessGetUsers         = "users retrieved successfully"
	MessageSuccessUpdateUserStatus = "user status updated successfully"
	MessageSuccessCreateStaff      = "staff account created successfully"

	MessageFailedRegister         = "failed to register"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUser          = "failed to retrieve user"
	MessageFailedGetUsers         = "failed to retrieve users"
	MessageFailedUpdateUserStatus = "failed to update user status"
	MessageFailedCreateStaff      = "failed to create staff account"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountPending        = errors.New("account is waiting for approval")
	ErrAccountRejected       = errors.New("account registration was rejected")
	ErrAccountSuspended      = errors.New("account is suspended")
	ErrInvalidUserStatus     = errors.New("invalid user status")
	ErrCannotManageUser      = errors.New("not allowed to manage this user")
	ErrUniversityRequired    = errors.New("university is required for this role")
	ErrHashPassword          = errors.New("failed to hash password")
	ErrInvalidStaffRole      = errors.New("invalid staff role")
	ErrUnauthorizedUserScope = errors.New("user belongs to another university")
)

type (
	RegisterRequest struct {
		Name         string `json:"name" validate:"required,min=2"`
		Email        string `json:"email" validate:"required,email"`
		Password     string `json:"password" validate:"required,min=8"`
		Phone        string `json:"phone" validate:"omitempty"`
		RoomNumber   string `json:"room_number" validate:"omitempty"`
		UniversityID string `json:"university_id" validate:"required,uuid"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		Role  string       `json:"role"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Phone        string    `json:"phone,omitempty"`
		RoomNumber   string    `json:"room_number,omitempty"`
		Role         string    `json:"role"`
		Status       string    `json:"status"`
		StatusReason string    `json:"status_reason,omitempty"`
		UniversityID string    `json:"university_id,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	UserFilter struct {
		Status       string
		Role         string
		UniversityID string
		Page         int
		Limit        int
	}

	UpdateUserStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=APPROVED REJECTED SUSPENDED"`
		Reason string `json:"reason" validate:"omitempty,max=255"`
	}

	CreateStaffRequest struct {
		Name         string `json:"name" validate:"required,min=2"`
		Email        string `json:"email" validate:"required,email"`
		Password     string `json:"password" validate:"required,min=8"`
		Phone        string `json:"phone" validate:"omitempty"`
		Role         string `json:"role" validate:"required,oneof=MANAGER CATERER ADMIN"`
		UniversityID string `json:"university_id" validate:"omitempty,uuid"`
	}
)
