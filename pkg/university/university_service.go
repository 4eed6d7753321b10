package university

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UniversityService interface {
		CreateUniversity(ctx context.Context, req domain.CreateUniversityRequest) (*domain.UniversityResponse, error)
		GetUniversities(ctx context.Context) ([]*domain.UniversityResponse, error)
	}

	universityService struct {
		universityRepository UniversityRepository
	}
)

func NewUniversityService(universityRepository UniversityRepository) UniversityService {
	return &universityService{universityRepository: universityRepository}
}

func (s *universityService) CreateUniversity(ctx context.Context, req domain.CreateUniversityRequest) (*domain.UniversityResponse, error) {
	code := strings.ToUpper(req.Code)
	if _, err := s.universityRepository.GetUniversityByCode(ctx, code); err == nil {
		return nil, domain.ErrUniversityAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	university := &entities.University{
		ID:   uuid.New(),
		Name: req.Name,
		Code: code,
	}
	if err := s.universityRepository.CreateUniversity(ctx, university); err != nil {
		return nil, err
	}
	return toUniversityResponse(university), nil
}

func (s *universityService) GetUniversities(ctx context.Context) ([]*domain.UniversityResponse, error) {
	universities, err := s.universityRepository.GetUniversities(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.UniversityResponse, 0, len(universities))
	for _, u := range universities {
		result = append(result, toUniversityResponse(u))
	}
	return result, nil
}

func toUniversityResponse(u *entities.University) *domain.UniversityResponse {
	return &domain.UniversityResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Code:      u.Code,
		CreatedAt: u.CreatedAt,
	}
}
