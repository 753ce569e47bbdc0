package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
)

// CustomerRepository exposes customer account persistence. Partial
// updates are keyed by email, matching the token claim.
type CustomerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) error
}

// GormCustomerRepository implements CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *GormCustomerRepository) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("email = ?", email).
		Updates(fields).Error
}
