package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateUniversity = "university created successfully"
	MessageSuccessGetUniversities  = "universities retrieved successfully"

	MessageFailedCreateUniversity = "failed to create university"
	MessageFailedGetUniversities  = "failed to retrieve universities"

	ErrUniversityNotFound      = errors.New("university not found")
	ErrUniversityAlreadyExists = errors.New("university code already exists")
)

type (
	CreateUniversityRequest struct {
		Name string `json:"name" validate:"required"`
		Code string `json:"code" validate:"required,alphanum,max=16"`
	}

	UniversityResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Code      string    `json:"code"`
		CreatedAt time.Time `json:"created_at"`
	}
)
