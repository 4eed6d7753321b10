package order

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
		GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error)
		GetOrdersByDateAndStatus(ctx context.Context, universityID string, date time.Time, status string) ([]*entities.Order, error)
		UpdateStatus(ctx context.Context, id string, fromStatus string, version int, updates map[string]interface{}) error
		UpdatePaymentURL(ctx context.Context, id string, paymentURL string) error
		UpdatePaymentStatus(ctx context.Context, orderNumber string, paymentStatus string) error
		DeleteOrder(ctx context.Context, id string) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder writes the order header and all its lines atomically.
func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			item.OrderID = order.ID
		}
		if len(order.Items) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(order.Items).Error
	})
}

func (r *orderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.preloaded(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	var order entities.Order
	if err := r.preloaded(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.UniversityID != "" {
		query = query.Where("university_id = ?", filter.UniversityID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		query = query.Where("order_date = ?", filter.Date)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Items").
		Order("order_date DESC, created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *orderRepository) GetOrdersByDateAndStatus(ctx context.Context, universityID string, date time.Time, status string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.preloaded(ctx).
		Where("university_id = ? AND order_date = ? AND status = ?", universityID, date.Format(domain.DateLayout), status).
		Order("updated_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus applies updates only if the row still has fromStatus and
// version, bumping the version. A lost race yields ErrOrderStatusConflict.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, fromStatus string, version int, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND status = ? AND version = ?", id, fromStatus, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderStatusConflict
	}
	return nil
}

func (r *orderRepository) UpdatePaymentURL(ctx context.Context, id string, paymentURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ?", id).
		Update("payment_url", paymentURL).Error
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, orderNumber string, paymentStatus string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("order_number = ?", orderNumber).
		Update("payment_status", paymentStatus)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entities.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
