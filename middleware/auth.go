package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tksilicon/tshirtshop/errors"
	"github.com/tksilicon/tshirtshop/models"
)

// CustomerContextKey is where the resolved principal lives in the gin
// context.
const CustomerContextKey = "customer"

// CustomerFinder is the slice of the customer repository the middleware
// needs.
type CustomerFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// TokenParser verifies a bearer token and returns the email claim.
type TokenParser interface {
	Parse(tokenStr string) (string, error)
}

// AuthPolicy captures the per-route-group failure statuses the legacy
// API used: order routes answer 401, the profile read answers 402 when
// the token is valid but the customer row is gone, and profile updates
// answer 400.
type AuthPolicy struct {
	InvalidStatus int
	InvalidCode   string
	MissingStatus int
	MissingCode   string
}

var (
	// OrdersAuth covers /orders and /stripe/charge.
	OrdersAuth = AuthPolicy{InvalidStatus: 401, InvalidCode: errors.CodeAuthFailed, MissingStatus: 401, MissingCode: errors.CodeAuthFailed}
	// ProfileAuth covers GET /customer.
	ProfileAuth = AuthPolicy{InvalidStatus: 401, InvalidCode: errors.CodeGenericUser, MissingStatus: 402, MissingCode: errors.CodeGenericUser}
	// UpdateAuth covers the PUT /customer* routes.
	UpdateAuth = AuthPolicy{InvalidStatus: 400, InvalidCode: errors.CodeGenericUser, MissingStatus: 400, MissingCode: errors.CodeGenericUser}
)

// BearerAuth resolves the Authorization header into an explicit customer
// principal before the handler runs. Handlers read it back with
// GetCustomer; there is no implicit mutable request state beyond the
// single context entry.
func BearerAuth(tokens TokenParser, customers CustomerFinder, policy AuthPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := tokens.Parse(c.GetHeader("Authorization"))
		if err != nil {
			errors.Abort(c, policy.InvalidStatus,
				errors.New(policy.InvalidCode, errors.ErrorOccurred, "jwt login", policy.InvalidStatus))
			return
		}

		customer, err := customers.FindByEmail(c.Request.Context(), email)
		if err != nil {
			errors.Abort(c, policy.MissingStatus,
				errors.New(policy.MissingCode, errors.ErrorOccurred, "jwt login user", policy.MissingStatus))
			return
		}

		c.Set(CustomerContextKey, customer)
		c.Next()
	}
}

// GetCustomer returns the authenticated principal set by BearerAuth.
func GetCustomer(c *gin.Context) (*models.Customer, bool) {
	val, ok := c.Get(CustomerContextKey)
	if !ok {
		return nil, false
	}
	customer, ok := val.(*models.Customer)
	return customer, ok
}
