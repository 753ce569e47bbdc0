package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Customer holds identity, contact, address and payment-card fields.
// Unique by email. The password column stores a bcrypt hash; hashing is
// done in the model layer (BeforeCreate), not in handlers.
type Customer struct {
	CustomerID       int     `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	Name             string  `gorm:"column:name;not null" json:"name"`
	Email            string  `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password         string  `gorm:"column:password;not null" json:"-"`
	CreditCard       string  `gorm:"column:credit_card" json:"credit_card"`
	Address1         string  `gorm:"column:address_1" json:"address_1"`
	Address2         string  `gorm:"column:address_2" json:"address_2"`
	City             string  `gorm:"column:city" json:"city"`
	Region           string  `gorm:"column:region" json:"region"`
	PostalCode       string  `gorm:"column:postal_code" json:"postal_code"`
	Country          string  `gorm:"column:country" json:"country"`
	ShippingRegionID int     `gorm:"column:shipping_region_id;default:1" json:"shipping_region_id"`
	DayPhone         string  `gorm:"column:day_phone" json:"day_phone"`
	EvePhone         string  `gorm:"column:eve_phone" json:"eve_phone"`
	MobPhone         string  `gorm:"column:mob_phone" json:"mob_phone"`
}

func (Customer) TableName() string { return "customer" }

// BeforeCreate hashes the plaintext password before the row is written.
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashed)
	return nil
}

// ValidatePassword compares a plaintext password against the stored hash.
func (c *Customer) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)) == nil
}

type Department struct {
	DepartmentID int    `gorm:"column:department_id;primaryKey;autoIncrement" json:"department_id"`
	Name         string `gorm:"column:name;not null" json:"name"`
	Description  string `gorm:"column:description" json:"description"`
}

func (Department) TableName() string { return "department" }

type Category struct {
	CategoryID   int    `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	DepartmentID int    `gorm:"column:department_id;not null" json:"department_id"`
	Name         string `gorm:"column:name;not null" json:"name"`
	Description  string `gorm:"column:description" json:"description"`
}

func (Category) TableName() string { return "category" }

type Product struct {
	ProductID       int     `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Name            string  `gorm:"column:name;not null" json:"name"`
	Description     string  `gorm:"column:description" json:"description"`
	Price           float64 `gorm:"column:price;not null" json:"price"`
	DiscountedPrice float64 `gorm:"column:discounted_price" json:"discounted_price"`
	Image           string  `gorm:"column:image" json:"image"`
	Image2          string  `gorm:"column:image_2" json:"image_2"`
	Thumbnail       string  `gorm:"column:thumbnail" json:"thumbnail"`
	Display         int     `gorm:"column:display;default:0" json:"display"`
}

func (Product) TableName() string { return "product" }

// ProductCategory is the product↔category join table.
type ProductCategory struct {
	ProductID  int `gorm:"column:product_id;primaryKey" json:"product_id"`
	CategoryID int `gorm:"column:category_id;primaryKey" json:"category_id"`
}

func (ProductCategory) TableName() string { return "product_category" }

// ShoppingCart is one cart line: a cart identifier groups rows, the
// buy_now flag distinguishes active lines (1) from soft-removed ones (0).
type ShoppingCart struct {
	ItemID     int       `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	CartID     string    `gorm:"column:cart_id;index;not null" json:"cart_id"`
	ProductID  int       `gorm:"column:product_id;not null" json:"product_id"`
	Attributes string    `gorm:"column:attributes;not null" json:"attributes"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	BuyNow     int       `gorm:"column:buy_now;default:1" json:"buy_now"`
	AddedOn    time.Time `gorm:"column:added_on;autoCreateTime" json:"added_on"`
}

func (ShoppingCart) TableName() string { return "shopping_cart" }

// Order is created once per checkout and never mutated afterwards.
type Order struct {
	OrderID     int        `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	TotalAmount float64    `gorm:"column:total_amount;not null" json:"total_amount"`
	CreatedOn   time.Time  `gorm:"column:created_on;not null" json:"created_on"`
	ShippedOn   *time.Time `gorm:"column:shipped_on" json:"shipped_on"`
	Status      int        `gorm:"column:status;default:0" json:"status"`
	Comments    string     `gorm:"column:comments" json:"comments"`
	CustomerID  int        `gorm:"column:customer_id;index;not null" json:"customer_id"`
	AuthCode    string     `gorm:"column:auth_code" json:"auth_code"`
	Reference   string     `gorm:"column:reference" json:"reference"`
	ShippingID  int        `gorm:"column:shipping_id" json:"shipping_id"`
	TaxID       int        `gorm:"column:tax_id" json:"tax_id"`
}

func (Order) TableName() string { return "orders" }

// OrderDetail is a point-in-time snapshot of a purchased line item.
// Product name and unit cost are copied at order time so later catalog
// changes never alter past orders.
type OrderDetail struct {
	ItemID      int     `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	OrderID     int     `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID   int     `gorm:"column:product_id;not null" json:"product_id"`
	Attributes  string  `gorm:"column:attributes;not null" json:"attributes"`
	ProductName string  `gorm:"column:product_name;not null" json:"product_name"`
	Quantity    int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitCost    float64 `gorm:"column:unit_cost;not null" json:"unit_cost"`
}

func (OrderDetail) TableName() string { return "order_detail" }

// Migrate runs auto migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Department{},
		&Category{},
		&Product{},
		&ProductCategory{},
		&ShoppingCart{},
		&Order{},
		&OrderDetail{},
	)
}
