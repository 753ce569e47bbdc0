package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tksilicon/tshirtshop/controllers"
	"github.com/tksilicon/tshirtshop/middleware"
)

// Register wires every endpoint onto the engine. Authenticated groups
// carry different failure statuses for historical compatibility: order
// routes reject with 401, profile reads with 401/402, profile writes
// with 400.
func Register(
	r *gin.Engine,
	products *controllers.ProductController,
	customersCtl *controllers.CustomerController,
	cart *controllers.CartController,
	tokens middleware.TokenParser,
	customers middleware.CustomerFinder,
) {
	r.GET("/products", products.GetAllProducts)
	r.GET("/products/search", products.SearchProducts)
	r.GET("/products/inCategory/:category_id", products.GetProductsByCategory)
	r.GET("/products/inDepartment/:department_id", products.GetProductsByDepartment)
	r.GET("/products/:product_id", products.GetProduct)

	r.GET("/departments", products.GetAllDepartments)
	r.GET("/departments/:department_id", products.GetDepartment)
	r.GET("/categories", products.GetAllCategories)
	r.GET("/categories/:category_id", products.GetSingleCategory)
	r.GET("/categories/inDepartment/:department_id", products.GetDepartmentCategories)

	r.POST("/customers", customersCtl.CreateCustomer)
	r.POST("/customers/login", customersCtl.Login)

	profile := r.Group("/customer")
	profile.Use(middleware.BearerAuth(tokens, customers, middleware.ProfileAuth))
	profile.GET("", customersCtl.GetCustomerProfile)

	updates := r.Group("/customer")
	updates.Use(middleware.BearerAuth(tokens, customers, middleware.UpdateAuth))
	updates.PUT("", customersCtl.UpdateCustomerProfile)
	updates.PUT("/address", customersCtl.UpdateCustomerAddress)
	updates.PUT("/creditCard", customersCtl.UpdateCreditCard)

	r.GET("/shoppingcart/generateUniqueId", cart.GenerateUniqueCart)
	r.POST("/shoppingcart/add", cart.AddItemToCart)
	r.GET("/shoppingcart/:cart_id", cart.GetCart)
	r.PUT("/shoppingcart/update/:item_id", cart.UpdateCartItem)
	r.DELETE("/shoppingcart/empty/:cart_id", cart.EmptyCart)
	r.DELETE("/shoppingcart/removeProduct/:item_id", cart.RemoveItemFromCart)

	orders := r.Group("/orders")
	orders.Use(middleware.BearerAuth(tokens, customers, middleware.OrdersAuth))
	orders.POST("", cart.CreateOrder)
	orders.GET("/inCustomer", cart.GetCustomerOrders)
	orders.GET("/:order_id", cart.GetOrderSummary)

	stripeGroup := r.Group("/stripe")
	stripeGroup.Use(middleware.BearerAuth(tokens, customers, middleware.OrdersAuth))
	stripeGroup.POST("/charge", cart.ProcessStripePayment)
}
