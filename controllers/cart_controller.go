package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/tksilicon/tshirtshop/errors"
	"github.com/tksilicon/tshirtshop/middleware"
	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
	"github.com/tksilicon/tshirtshop/services"
	"github.com/tksilicon/tshirtshop/utils"
)

// userKeyHeader carries the refreshed token on authenticated order
// responses. The value is the raw token, without a Bearer prefix.
const userKeyHeader = "USERKEY"

// ProductFinder loads a single product row for cart hydration.
type ProductFinder interface {
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

// OrderCreator runs the checkout transaction and returns the new order id.
type OrderCreator interface {
	CreateOrder(ctx context.Context, customerID int, req *services.CreateOrderRequest) (int, error)
}

// CardCharger submits a payment to the card gateway.
type CardCharger interface {
	ChargeCard(amount float64, sourceToken, orderID string) (*stripe.Charge, error)
}

// ReceiptSender delivers the order receipt email.
type ReceiptSender interface {
	SendOrderReceipt(to, orderID string, amount float64) error
}

type CartController struct {
	carts    repository.CartRepository
	products ProductFinder
	orders   repository.OrderRepository
	checkout OrderCreator
	tokens   TokenIssuer
	gateway  CardCharger
	receipts ReceiptSender
	logger   *zap.Logger
}

func NewCartController(
	carts repository.CartRepository,
	products ProductFinder,
	orders repository.OrderRepository,
	checkout OrderCreator,
	tokens TokenIssuer,
	gateway CardCharger,
	receipts ReceiptSender,
	logger *zap.Logger,
) *CartController {
	return &CartController{
		carts:    carts,
		products: products,
		orders:   orders,
		checkout: checkout,
		tokens:   tokens,
		gateway:  gateway,
		receipts: receipts,
		logger:   logger,
	}
}

// cartProduct is a cart line joined with its product for display.
type cartProduct struct {
	ItemID     int     `json:"item_id"`
	CartID     string  `json:"cart_id"`
	Name       string  `json:"name"`
	Attributes string  `json:"attributes"`
	ProductID  int     `json:"product_id"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

// GenerateUniqueCart mints a new cart identifier. No uniqueness check is
// performed against existing carts.
func (cc *CartController) GenerateUniqueCart(c *gin.Context) {
	cartID := utils.UniqueID(11)
	if cartID == "" {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartGenerate, errors.ErrorOccurred, "generateUniqueCart", http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_id": cartID})
}

// AddItemToCart inserts a new cart line with quantity 1 and returns the
// hydrated cart. Repeating the call for the same product adds another
// line rather than bumping the quantity.
func (cc *CartController) AddItemToCart(c *gin.Context) {
	cartID := c.Query("cart_id")
	attributes := c.Query("attributes")
	productIDRaw := c.Query("product_id")

	productID := utils.Atoi(productIDRaw)
	if cartID == "" || attributes == "" || productIDRaw == "" || productID == 0 {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeCartItemParams, "Check item parameters.", "cart_id, product_id, attributes", http.StatusBadRequest))
		return
	}

	item := &models.ShoppingCart{
		CartID:     cartID,
		ProductID:  productID,
		Attributes: attributes,
		Quantity:   1,
		BuyNow:     1,
	}
	if err := cc.carts.AddItem(c.Request.Context(), item); err != nil {
		cc.logger.Error("adding cart item failed", zap.String("cart_id", cartID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemParams, errors.ErrorOccurred, "add to cart", http.StatusBadRequest))
		return
	}

	cart, err := cc.hydrateCart(c.Request.Context(), cartID)
	if err != nil {
		cc.logger.Error("loading cart failed", zap.String("cart_id", cartID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemParams, errors.ErrorOccurred, "add to cart", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingCart": cart})
}

func (cc *CartController) hydrateCart(ctx context.Context, cartID string) ([]cartProduct, error) {
	items, err := cc.carts.FindByCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart := make([]cartProduct, 0, len(items))
	for _, item := range items {
		product, err := cc.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		cart = append(cart, cartProduct{
			ItemID:     item.ItemID,
			CartID:     item.CartID,
			Name:       product.Name,
			Attributes: item.Attributes,
			ProductID:  item.ProductID,
			Image:      product.Image2,
			Price:      product.Price,
			Quantity:   item.Quantity,
			Subtotal:   product.Price * float64(item.Quantity),
		})
	}
	return cart, nil
}

// GetCart returns the active lines of a cart as raw rows.
func (cc *CartController) GetCart(c *gin.Context) {
	cartID := c.Param("cart_id")
	if cartID == "" {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeCartParam, "Check cart parameters.", "cart_id", http.StatusBadRequest))
		return
	}

	items, err := cc.carts.FindActiveByCart(c.Request.Context(), cartID)
	if err != nil {
		cc.logger.Error("loading cart failed", zap.String("cart_id", cartID), zap.Error(err))
		errors.Respond(c, http.StatusNotFound,
			errors.New(errors.CodeCartItemParams, errors.ErrorOccurred, "get shoppingcart", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingCart": items})
}

// UpdateCartItem sets the quantity on a single cart line.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	itemID := utils.Atoi(c.Param("item_id"))

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemMiss, errors.ErrorOccurred, "updatecartitem", http.StatusBadRequest))
		return
	}

	item, err := cc.carts.FindItem(c.Request.Context(), itemID)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemMiss, errors.ErrorOccurred, "updatecartitem", http.StatusBadRequest))
		return
	}

	item.Quantity = body.Quantity
	if err := cc.carts.SaveItem(c.Request.Context(), item); err != nil {
		cc.logger.Error("updating cart item failed", zap.Int("item_id", itemID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemMiss, errors.ErrorOccurred, "updatecartitem", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{"cartItem": item})
}

// EmptyCart hard-deletes every line of a cart. A cart with no rows is
// reported as missing.
func (cc *CartController) EmptyCart(c *gin.Context) {
	cartID := c.Param("cart_id")

	affected, err := cc.carts.DeleteByCart(c.Request.Context(), cartID)
	if err != nil {
		cc.logger.Error("emptying cart failed", zap.String("cart_id", cartID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartEmpty, errors.ErrorOccurred, "delete shoppingcart", http.StatusBadRequest))
		return
	}
	if affected == 0 {
		errors.Respond(c, http.StatusNotFound,
			errors.New(errors.CodeCartEmpty, errors.ErrorOccurred, "delete shoppingcart", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingCart": affected})
}

// RemoveItemFromCart soft-removes a single line by clearing its buy_now
// flag. The row stays in the table.
func (cc *CartController) RemoveItemFromCart(c *gin.Context) {
	itemID := utils.Atoi(c.Param("item_id"))

	item, err := cc.carts.FindItem(c.Request.Context(), itemID)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemMiss, errors.ErrorOccurred, "removecartitem", http.StatusBadRequest))
		return
	}

	item.BuyNow = 0
	if err := cc.carts.SaveItem(c.Request.Context(), item); err != nil {
		cc.logger.Error("removing cart item failed", zap.Int("item_id", itemID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeCartItemMiss, errors.ErrorOccurred, "removecartitem", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// refreshUserKey issues a fresh token for the principal and attaches it
// to the response. Reports false after writing an error response.
func (cc *CartController) refreshUserKey(c *gin.Context, email string) bool {
	token, err := cc.tokens.Generate(email)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt signing", http.StatusBadRequest))
		return false
	}
	c.Header(userKeyHeader, token)
	return true
}

// CreateOrder converts the active cart lines into an order.
func (cc *CartController) CreateOrder(c *gin.Context) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeAuthFailed, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeOrderFailed, errors.ErrorOccurred, "order parameters", http.StatusBadRequest))
		return
	}

	orderID, err := cc.checkout.CreateOrder(c.Request.Context(), customer.CustomerID, &req)
	if err != nil {
		cc.logger.Error("checkout failed", zap.String("cart_id", req.CartID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeOrderFailed, errors.ErrorOccurred, "processing order inserting into orderdetail", http.StatusBadRequest))
		return
	}

	if !cc.refreshUserKey(c, customer.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": gin.H{"order_id": orderID}})
}

// GetCustomerOrders lists the principal's orders.
func (cc *CartController) GetCustomerOrders(c *gin.Context) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeAuthFailed, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	orders, err := cc.orders.FindByCustomer(c.Request.Context(), customer.CustomerID)
	if err != nil {
		cc.logger.Error("listing orders failed", zap.Int("customer_id", customer.CustomerID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "orders", http.StatusBadRequest))
		return
	}

	if !cc.refreshUserKey(c, customer.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderSummary returns one of the principal's orders, as a list. A
// non-numeric or unknown order id yields an empty list, not an error.
func (cc *CartController) GetOrderSummary(c *gin.Context) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeAuthFailed, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	orderID := utils.Atoi(c.Param("order_id"))

	orders, err := cc.orders.FindByIDAndCustomer(c.Request.Context(), orderID, customer.CustomerID)
	if err != nil {
		cc.logger.Error("loading order failed", zap.Int("order_id", orderID), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "orders", http.StatusBadRequest))
		return
	}

	if !cc.refreshUserKey(c, customer.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type stripePaymentRequest struct {
	Email       string      `json:"email"`
	Amount      float64     `json:"amount"`
	StripeToken string      `json:"stripeToken"`
	OrderID     json.Number `json:"order_id"`
}

// ProcessStripePayment charges the card and emails a receipt. Gateway
// failures are logged and reported as a null charge with a 200 status;
// the caller cannot distinguish a declined card from a success without
// inspecting the charge body.
func (cc *CartController) ProcessStripePayment(c *gin.Context) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeAuthFailed, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	var req stripePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "stripe charge", http.StatusBadRequest))
		return
	}

	orderID := req.OrderID.String()

	charge, err := cc.gateway.ChargeCard(req.Amount, req.StripeToken, orderID)
	if err != nil {
		cc.logger.Error("stripe charge failed", zap.String("order_id", orderID), zap.Error(err))
		charge = nil
	}

	to := req.Email
	if to == "" {
		to = customer.Email
	}
	if err := cc.receipts.SendOrderReceipt(to, orderID, req.Amount); err != nil {
		cc.logger.Error("receipt email failed", zap.String("order_id", orderID), zap.Error(err))
	}

	if !cc.refreshUserKey(c, customer.Email) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"charge": charge})
}
