package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tksilicon/tshirtshop/errors"
	"github.com/tksilicon/tshirtshop/middleware"
	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
	"github.com/tksilicon/tshirtshop/services"
)

var validate = validator.New()

// TokenIssuer abstracts token generation for handler tests.
type TokenIssuer interface {
	Generate(email string) (string, error)
}

type CustomerController struct {
	customers repository.CustomerRepository
	tokens    TokenIssuer
	logger    *zap.Logger
}

func NewCustomerController(customers repository.CustomerRepository, tokens TokenIssuer, logger *zap.Logger) *CustomerController {
	return &CustomerController{customers: customers, tokens: tokens, logger: logger}
}

// shortProfile is the registration response shape: identity and primary
// address only, no phone or card fields.
func shortProfile(customer *models.Customer) gin.H {
	return gin.H{
		"customer_id": customer.CustomerID,
		"name":        customer.Name,
		"email":       customer.Email,
		"address_1":   customer.Address1,
		"address_2":   customer.Address2,
		"city":        customer.City,
		"region":      customer.Region,
	}
}

// CreateCustomer registers a new account and signs the customer in.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	name := c.Query("name")
	email := c.Query("email")
	password := c.Query("password")

	if err := validate.Var(email, "required,email"); err != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeEmailInvalid, "The email is invalid.", "email", http.StatusBadRequest))
		return
	}

	if existing, err := cc.customers.FindByEmail(c.Request.Context(), email); err == nil && existing != nil {
		errors.Respond(c, http.StatusUnprocessableEntity,
			errors.New(errors.CodeEmailExists, "The email already exists.", "email", http.StatusBadRequest))
		return
	}

	customer := &models.Customer{Name: name, Email: email, Password: password}
	if err := cc.customers.Create(c.Request.Context(), customer); err != nil {
		cc.logger.Error("customer registration failed", zap.String("email", email), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "register", http.StatusBadRequest))
		return
	}

	token, err := cc.tokens.Generate(customer.Email)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt signing", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":    shortProfile(customer),
		"accessToken": "Bearer " + token,
		"expiresIn":   services.ExpiresIn,
	})
}

// Login verifies credentials and returns the full profile with a fresh
// token.
func (cc *CustomerController) Login(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")

	customer, err := cc.customers.FindByEmail(c.Request.Context(), email)
	if err != nil || !customer.ValidatePassword(password) {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "login", http.StatusBadRequest))
		return
	}

	token, err := cc.tokens.Generate(customer.Email)
	if err != nil {
		errors.Respond(c, http.StatusUnauthorized,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt signing", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":    customer,
		"accessToken": "Bearer " + token,
		"expiresIn":   services.ExpiresIn,
	})
}

// GetCustomerProfile returns the authenticated customer's full profile
// along with a refreshed token.
func (cc *CustomerController) GetCustomerProfile(c *gin.Context) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusPaymentRequired,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	token, err := cc.tokens.Generate(customer.Email)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt signing", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":    customer,
		"accessToken": "Bearer " + token,
		"expiresIn":   services.ExpiresIn,
	})
}

// queryUpdates collects the named query params into a column update map,
// including only keys that were actually supplied.
func queryUpdates(c *gin.Context, keys ...string) map[string]interface{} {
	updates := map[string]interface{}{}
	values := c.Request.URL.Query()
	for _, key := range keys {
		if values.Has(key) {
			updates[key] = values.Get(key)
		}
	}
	return updates
}

func (cc *CustomerController) applyUpdate(c *gin.Context, updates map[string]interface{}) {
	customer, ok := middleware.GetCustomer(c)
	if !ok {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt login user", http.StatusBadRequest))
		return
	}

	if err := cc.customers.UpdateByEmail(c.Request.Context(), customer.Email, updates); err != nil {
		cc.logger.Error("customer update failed", zap.String("email", customer.Email), zap.Error(err))
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "update", http.StatusBadRequest))
		return
	}

	updated, err := cc.customers.FindByEmail(c.Request.Context(), customer.Email)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "update", http.StatusBadRequest))
		return
	}

	token, err := cc.tokens.Generate(updated.Email)
	if err != nil {
		errors.Respond(c, http.StatusBadRequest,
			errors.New(errors.CodeGenericUser, errors.ErrorOccurred, "jwt signing", http.StatusBadRequest))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":    updated,
		"accessToken": "Bearer " + token,
		"expiresIn":   services.ExpiresIn,
	})
}

// UpdateCustomerProfile updates name and phone numbers. A password param,
// if present, is ignored rather than rehashed.
func (cc *CustomerController) UpdateCustomerProfile(c *gin.Context) {
	cc.applyUpdate(c, queryUpdates(c, "name", "day_phone", "eve_phone", "mob_phone"))
}

// UpdateCustomerAddress updates the address block.
func (cc *CustomerController) UpdateCustomerAddress(c *gin.Context) {
	updates := queryUpdates(c, "address_1", "address_2", "city", "region", "postal_code", "country")
	if raw := c.Query("shipping_region_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			updates["shipping_region_id"] = id
		}
	}
	cc.applyUpdate(c, updates)
}

// UpdateCreditCard stores the card value as supplied.
func (cc *CustomerController) UpdateCreditCard(c *gin.Context) {
	cc.applyUpdate(c, queryUpdates(c, "credit_card"))
}
