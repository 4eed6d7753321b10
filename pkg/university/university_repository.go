package university

import (
	"Hostel-Food-Ordering/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UniversityRepository interface {
		CreateUniversity(ctx context.Context, university *entities.University) error
		GetUniversities(ctx context.Context) ([]*entities.University, error)
		GetUniversityByID(ctx context.Context, id string) (*entities.University, error)
		GetUniversityByCode(ctx context.Context, code string) (*entities.University, error)
	}

	universityRepository struct {
		db *gorm.DB
	}
)

func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) CreateUniversity(ctx context.Context, university *entities.University) error {
	return r.db.WithContext(ctx).Create(university).Error
}

func (r *universityRepository) GetUniversities(ctx context.Context) ([]*entities.University, error) {
	var universities []*entities.University
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (r *universityRepository) GetUniversityByID(ctx context.Context, id string) (*entities.University, error) {
	var university entities.University
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}

func (r *universityRepository) GetUniversityByCode(ctx context.Context, code string) (*entities.University, error) {
	var university entities.University
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&university).Error; err != nil {
		return nil, err
	}
	return &university, nil
}
