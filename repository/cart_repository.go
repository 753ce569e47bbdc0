package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
)

// CartRepository exposes shopping-cart line persistence. Adding an item
// always inserts a new row (the legacy API never merges quantities), and
// removing a single item is a soft remove via the buy_now flag.
type CartRepository interface {
	AddItem(ctx context.Context, item *models.ShoppingCart) error
	FindByCart(ctx context.Context, cartID string) ([]models.ShoppingCart, error)
	FindActiveByCart(ctx context.Context, cartID string) ([]models.ShoppingCart, error)
	FindItem(ctx context.Context, itemID int) (*models.ShoppingCart, error)
	SaveItem(ctx context.Context, item *models.ShoppingCart) error
	DeleteByCart(ctx context.Context, cartID string) (int64, error)
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) AddItem(ctx context.Context, item *models.ShoppingCart) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormCartRepository) FindByCart(ctx context.Context, cartID string) ([]models.ShoppingCart, error) {
	var items []models.ShoppingCart
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("item_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) FindActiveByCart(ctx context.Context, cartID string) ([]models.ShoppingCart, error) {
	var items []models.ShoppingCart
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND buy_now = ?", cartID, 1).
		Order("item_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) FindItem(ctx context.Context, itemID int) (*models.ShoppingCart, error) {
	var item models.ShoppingCart
	if err := r.db.WithContext(ctx).First(&item, "item_id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) SaveItem(ctx context.Context, item *models.ShoppingCart) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByCart removes every line for the cart and reports how many rows
// were affected; callers treat zero as a miss.
func (r *GormCartRepository) DeleteByCart(ctx context.Context, cartID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.ShoppingCart{})
	return res.RowsAffected, res.Error
}
