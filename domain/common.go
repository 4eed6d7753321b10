package domain

import (
	"errors"
)

const (
	RoleStudent = "STUDENT"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
	RoleCaterer = "CATERER"

	UserStatusPending   = "PENDING"
	UserStatusApproved  = "APPROVED"
	UserStatusRejected  = "REJECTED"
	UserStatusSuspended = "SUSPENDED"

	DateLayout = "2006-01-02"
)

var (
	MessageFailedBodyRequest  = "failed to parse body request"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"
	MesaageUserNotAllowed     = "user not allowed"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
)

type (
	// Actor is the authenticated caller as resolved from the access token.
	Actor struct {
		UserID       string
		Role         string
		UniversityID string
	}

	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func (a Actor) IsStaff() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
