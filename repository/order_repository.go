package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
)

// OrderRepository exposes order reads scoped to a customer. Order
// creation lives in the checkout service because it is the one
// transactional flow in the system.
type OrderRepository interface {
	FindByCustomer(ctx context.Context, customerID int) ([]models.Order, error)
	FindByIDAndCustomer(ctx context.Context, orderID, customerID int) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("order_id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByIDAndCustomer(ctx context.Context, orderID, customerID int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND customer_id = ?", orderID, customerID).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
