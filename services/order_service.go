package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
)

// CreateOrderRequest is the checkout request body.
type CreateOrderRequest struct {
	CartID     string `json:"cart_id" binding:"required"`
	ShippingID int    `json:"shipping_id"`
	TaxID      int    `json:"tax_id"`
}

// OrderService owns the one transactional flow in the system: turning a
// cart into an order plus its detail snapshot.
type OrderService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOrderService(db *gorm.DB, logger *zap.Logger) *OrderService {
	return &OrderService{db: db, logger: logger}
}

// CreateOrder reads the active lines of the cart, totals them at current
// catalog prices, and writes the Order row with one OrderDetail snapshot
// per line. Everything happens inside a single transaction: either the
// order and all its details commit together or none do. There is no
// retry; failure surfaces once to the caller.
func (s *OrderService) CreateOrder(ctx context.Context, customerID int, req *CreateOrderRequest) (int, error) {
	var orderID int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.ShoppingCart
		if err := tx.Where("cart_id = ? AND buy_now = ?", req.CartID, 1).
			Order("item_id").
			Find(&items).Error; err != nil {
			return err
		}

		var totalAmount float64
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "product_id = ?", item.ProductID).Error; err != nil {
				return fmt.Errorf("loading product %d: %w", item.ProductID, err)
			}
			totalAmount += product.Price * float64(item.Quantity)
		}

		order := models.Order{
			TotalAmount: totalAmount,
			CreatedOn:   time.Now(),
			CustomerID:  customerID,
			ShippingID:  req.ShippingID,
			TaxID:       req.TaxID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "product_id = ?", item.ProductID).Error; err != nil {
				return fmt.Errorf("loading product %d: %w", item.ProductID, err)
			}
			detail := models.OrderDetail{
				OrderID:     order.OrderID,
				ProductID:   product.ProductID,
				Attributes:  item.Attributes,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitCost:    product.Price,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return fmt.Errorf("inserting order detail: %w", err)
			}
		}

		orderID = order.OrderID
		return nil
	})
	if err != nil {
		s.logger.Error("order creation failed",
			zap.String("cart_id", req.CartID),
			zap.Int("customer_id", customerID),
			zap.Error(err))
		return 0, err
	}

	return orderID, nil
}
