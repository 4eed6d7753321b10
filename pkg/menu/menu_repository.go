package menu

import (
	"Hostel-Food-Ordering/entities"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	MenuRepository interface {
		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error
		DeleteMenuItem(ctx context.Context, id string) error
		DeactivateMenuItem(ctx context.Context, id string) error
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetMenuItemsByIDs(ctx context.Context, ids []string) ([]*entities.MenuItem, error)
		GetMenuItems(ctx context.Context, universityID string, activeOnly bool) ([]*entities.MenuItem, error)
		UpdateImageURL(ctx context.Context, id string, imageURL string) error
		CountOrderReferences(ctx context.Context, id string) (int64, error)

		SetAvailability(ctx context.Context, availability *entities.MenuAvailability) error
		GetAvailabilityByDate(ctx context.Context, universityID string, date time.Time) (map[string]bool, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func orderedVariants(db *gorm.DB) *gorm.DB {
	return db.Order("is_default DESC, price ASC")
}

// CreateMenuItem stores the item and its variants in one transaction.
func (r *menuRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
			return err
		}
		for _, v := range item.Variants {
			v.MenuItemID = item.ID
			if err := tx.Create(v).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateMenuItem rewrites the item row and reconciles variants: known ids are
// updated, new ones created, and variants missing from item.Variants are
// deactivated rather than deleted because past order lines reference them.
func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.MenuItem{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"name":          item.Name,
				"description":   item.Description,
				"price":         item.Price,
				"offer_price":   item.OfferPrice,
				"categories":    item.Categories,
				"dietary_flags": item.DietaryFlags,
				"is_active":     item.IsActive,
				"updated_at":    time.Now(),
			}).Error; err != nil {
			return err
		}

		keep := make([]interface{}, 0, len(item.Variants))
		for _, v := range item.Variants {
			v.MenuItemID = item.ID
			if err := tx.Save(v).Error; err != nil {
				return err
			}
			keep = append(keep, v.ID)
		}

		query := tx.Model(&entities.MenuVariant{}).Where("menu_item_id = ?", item.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		return query.Updates(map[string]interface{}{
			"is_active":  false,
			"is_default": false,
		}).Error
	})
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&entities.MenuAvailability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&entities.MenuVariant{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.MenuItem{}).Error
	})
}

func (r *menuRepository) DeactivateMenuItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Variants", orderedVariants).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetMenuItemsByIDs(ctx context.Context, ids []string) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).
		Preload("Variants", orderedVariants).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context, universityID string, activeOnly bool) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	query := r.db.WithContext(ctx).Preload("Variants", orderedVariants)
	if universityID != "" {
		query = query.Where("university_id = ?", universityID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *menuRepository) CountOrderReferences(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Where("menu_item_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *menuRepository) SetAvailability(ctx context.Context, availability *entities.MenuAvailability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "menu_item_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_available", "updated_at"}),
		}).
		Create(availability).Error
}

func (r *menuRepository) GetAvailabilityByDate(ctx context.Context, universityID string, date time.Time) (map[string]bool, error) {
	var rows []entities.MenuAvailability
	if err := r.db.WithContext(ctx).
		Joins("JOIN menu_items ON menu_items.id = menu_availabilities.menu_item_id").
		Where("menu_items.university_id = ? AND menu_availabilities.date = ?", universityID, date.Format("2006-01-02")).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(rows))
	for _, row := range rows {
		result[row.MenuItemID.String()] = row.IsAvailable
	}
	return result, nil
}
