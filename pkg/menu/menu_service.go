package menu

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"Hostel-Food-Ordering/internal/utils"
	"Hostel-Food-Ordering/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		CreateMenuItem(ctx context.Context, actor domain.Actor, req domain.MenuItemRequest) (*domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, actor domain.Actor, id string, req domain.MenuItemRequest) (*domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, actor domain.Actor, id string) error
		GetMenuItems(ctx context.Context, actor domain.Actor, universityID string) ([]*domain.MenuItemResponse, error)
		GetStudentMenu(ctx context.Context, actor domain.Actor, date string) ([]*domain.MenuItemResponse, error)
		SetAvailability(ctx context.Context, actor domain.Actor, id string, req domain.SetAvailabilityRequest) error
		UploadMenuImage(ctx context.Context, actor domain.Actor, id string, req domain.UploadMenuImageRequest) (*domain.MenuItemResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		s3             storage.AwsS3
	}
)

func NewMenuService(menuRepository MenuRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		s3:             s3,
	}
}

func (s *menuService) CreateMenuItem(ctx context.Context, actor domain.Actor, req domain.MenuItemRequest) (*domain.MenuItemResponse, error) {
	universityID, err := resolveUniversity(actor, req.UniversityID)
	if err != nil {
		return nil, err
	}

	item := &entities.MenuItem{
		ID:           uuid.New(),
		UniversityID: universityID,
		IsActive:     true,
	}
	if err := applyMenuRequest(item, req); err != nil {
		return nil, err
	}

	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item, nil), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, actor domain.Actor, id string, req domain.MenuItemRequest) (*domain.MenuItemResponse, error) {
	item, err := s.getScopedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]*entities.MenuVariant, len(item.Variants))
	for _, v := range item.Variants {
		existing[v.ID.String()] = v
	}
	for _, v := range req.Variants {
		if v.ID != "" && existing[v.ID] == nil {
			return nil, domain.ErrVariantNotFound
		}
	}

	if err := applyMenuRequest(item, req); err != nil {
		return nil, err
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item, nil), nil
}

// DeleteMenuItem removes an item that was never ordered. Items referenced by
// past orders are deactivated instead so order history keeps its lines.
func (s *menuService) DeleteMenuItem(ctx context.Context, actor domain.Actor, id string) error {
	item, err := s.getScopedItem(ctx, actor, id)
	if err != nil {
		return err
	}

	refs, err := s.menuRepository.CountOrderReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		log.Infof("menu item %s has %d order lines, deactivating", id, refs)
		return s.menuRepository.DeactivateMenuItem(ctx, id)
	}

	if err := s.menuRepository.DeleteMenuItem(ctx, id); err != nil {
		return err
	}

	if item.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(item.ImageURL); key != "" {
			_ = s.s3.DeleteFile(key)
		}
	}
	return nil
}

func (s *menuService) GetMenuItems(ctx context.Context, actor domain.Actor, universityID string) ([]*domain.MenuItemResponse, error) {
	if actor.Role != domain.RoleAdmin {
		universityID = actor.UniversityID
	}

	items, err := s.menuRepository.GetMenuItems(ctx, universityID, false)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ToMenuItemResponse(item, nil))
	}
	return result, nil
}

func (s *menuService) GetStudentMenu(ctx context.Context, actor domain.Actor, date string) ([]*domain.MenuItemResponse, error) {
	if actor.UniversityID == "" {
		return nil, domain.ErrUniversityRequired
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	items, err := s.menuRepository.GetMenuItems(ctx, actor.UniversityID, true)
	if err != nil {
		return nil, err
	}
	availability, err := s.menuRepository.GetAvailabilityByDate(ctx, actor.UniversityID, day)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		available := true
		if v, ok := availability[item.ID.String()]; ok {
			available = v
		}

		activeVariants := make([]*entities.MenuVariant, 0, len(item.Variants))
		for _, v := range item.Variants {
			if v.IsActive {
				activeVariants = append(activeVariants, v)
			}
		}
		item.Variants = activeVariants

		result = append(result, ToMenuItemResponse(item, &available))
	}
	return result, nil
}

func (s *menuService) SetAvailability(ctx context.Context, actor domain.Actor, id string, req domain.SetAvailabilityRequest) error {
	item, err := s.getScopedItem(ctx, actor, id)
	if err != nil {
		return err
	}
	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return err
	}

	return s.menuRepository.SetAvailability(ctx, &entities.MenuAvailability{
		ID:          uuid.New(),
		MenuItemID:  item.ID,
		Date:        day,
		IsAvailable: *req.IsAvailable,
	})
}

func (s *menuService) UploadMenuImage(ctx context.Context, actor domain.Actor, id string, req domain.UploadMenuImageRequest) (*domain.MenuItemResponse, error) {
	item, err := s.getScopedItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var objectKey string
	existingKey := ""
	if item.ImageURL != "" {
		existingKey = s.s3.GetObjectKeyFromLink(item.ImageURL)
	}
	if existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		fileName := fmt.Sprintf("%s-%d", item.ID.String(), time.Now().Unix())
		objectKey, err = s.s3.UploadFile(fileName, req.Image, "menu-items", storage.AllowImage...)
	}
	if err != nil {
		return nil, err
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.menuRepository.UpdateImageURL(ctx, id, item.ImageURL); err != nil {
		return nil, err
	}
	return ToMenuItemResponse(item, nil), nil
}

func (s *menuService) getScopedItem(ctx context.Context, actor domain.Actor, id string) (*entities.MenuItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}

	if actor.Role != domain.RoleAdmin && item.UniversityID.String() != actor.UniversityID {
		return nil, domain.ErrUnauthorizedMenuScope
	}
	return item, nil
}

func resolveUniversity(actor domain.Actor, requested string) (uuid.UUID, error) {
	if actor.Role == domain.RoleAdmin {
		if requested == "" {
			return uuid.Nil, domain.ErrUniversityRequired
		}
		id, err := uuid.Parse(requested)
		if err != nil {
			return uuid.Nil, domain.ErrParseUUID
		}
		return id, nil
	}

	id, err := uuid.Parse(actor.UniversityID)
	if err != nil {
		return uuid.Nil, domain.ErrUniversityRequired
	}
	return id, nil
}

// applyMenuRequest copies req onto item and rebuilds item.Variants. Variants
// with an id keep it; the rest get a fresh one.
func applyMenuRequest(item *entities.MenuItem, req domain.MenuItemRequest) error {
	if !req.Price.IsPositive() {
		return domain.ErrInvalidPrice
	}
	offer := decimal.NullDecimal{}
	if req.OfferPrice != nil {
		if !req.OfferPrice.IsPositive() || req.OfferPrice.GreaterThanOrEqual(req.Price) {
			return domain.ErrInvalidOfferPrice
		}
		offer = decimal.NewNullDecimal(*req.OfferPrice)
	}

	variants, err := buildVariants(req.Variants)
	if err != nil {
		return err
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.OfferPrice = offer
	item.Categories = datatypes.JSONSlice[string](nonNil(req.Categories))
	item.DietaryFlags = datatypes.JSONSlice[string](nonNil(req.DietaryFlags))
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.Variants = variants
	return nil
}

// buildVariants enforces a single default variant. When none is flagged the
// first active variant becomes the default.
func buildVariants(reqs []domain.VariantRequest) ([]*entities.MenuVariant, error) {
	variants := make([]*entities.MenuVariant, 0, len(reqs))
	defaults := 0
	for _, r := range reqs {
		if !r.Price.IsPositive() {
			return nil, domain.ErrInvalidPrice
		}
		id := uuid.New()
		if r.ID != "" {
			parsed, err := uuid.Parse(r.ID)
			if err != nil {
				return nil, domain.ErrParseUUID
			}
			id = parsed
		}
		active := true
		if r.IsActive != nil {
			active = *r.IsActive
		}
		if r.IsDefault {
			defaults++
		}
		variants = append(variants, &entities.MenuVariant{
			ID:        id,
			Name:      r.Name,
			Price:     r.Price,
			IsDefault: r.IsDefault,
			IsActive:  active,
		})
	}

	if defaults > 1 {
		return nil, domain.ErrMultipleDefaultVariant
	}
	if defaults == 0 {
		for _, v := range variants {
			if v.IsActive {
				v.IsDefault = true
				break
			}
		}
	}
	return variants, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func ToMenuItemResponse(item *entities.MenuItem, available *bool) *domain.MenuItemResponse {
	var offer *decimal.Decimal
	if item.OfferPrice.Valid {
		o := item.OfferPrice.Decimal
		offer = &o
	}

	variants := make([]domain.VariantResponse, 0, len(item.Variants))
	for _, v := range item.Variants {
		variants = append(variants, domain.VariantResponse{
			ID:        v.ID.String(),
			Name:      v.Name,
			Price:     v.Price,
			IsDefault: v.IsDefault,
			IsActive:  v.IsActive,
		})
	}

	return &domain.MenuItemResponse{
		ID:           item.ID.String(),
		UniversityID: item.UniversityID.String(),
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		OfferPrice:   offer,
		Categories:   nonNil(item.Categories),
		DietaryFlags: nonNil(item.DietaryFlags),
		ImageURL:     item.ImageURL,
		IsActive:     item.IsActive,
		IsAvailable:  available,
		Variants:     variants,
		CreatedAt:    item.CreatedAt,
	}
}
