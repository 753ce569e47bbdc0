package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tksilicon/tshirtshop/models"
)

type fakeParser struct {
	email string
	err   error
}

func (f *fakeParser) Parse(tokenStr string) (string, error) {
	return f.email, f.err
}

type fakeFinder struct {
	customer *models.Customer
	err      error
}

func (f *fakeFinder) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return f.customer, f.err
}

func authRouter(parser *fakeParser, finder *fakeFinder, policy AuthPolicy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", BearerAuth(parser, finder, policy), func(c *gin.Context) {
		customer, ok := GetCustomer(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer_id": customer.CustomerID})
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var parsed struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(body, &parsed))
	return parsed.Error.Code
}

func TestBearerAuthSetsPrincipal(t *testing.T) {
	router := authRouter(
		&fakeParser{email: "jane@example.com"},
		&fakeFinder{customer: &models.Customer{CustomerID: 7, Email: "jane@example.com"}},
		OrdersAuth,
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer any")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"customer_id":7}`, recorder.Body.String())
}

func TestOrdersAuthInvalidToken(t *testing.T) {
	router := authRouter(&fakeParser{err: errors.New("bad token")}, &fakeFinder{}, OrdersAuth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "USR_11", errorCode(t, recorder.Body.Bytes()))
}

func TestProfileAuthMissingCustomer(t *testing.T) {
	// valid token for a customer row that no longer exists
	router := authRouter(
		&fakeParser{email: "gone@example.com"},
		&fakeFinder{err: errors.New("record not found")},
		ProfileAuth,
	)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer any")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusPaymentRequired, recorder.Code)
	assert.Equal(t, "USR_10", errorCode(t, recorder.Body.Bytes()))
}

func TestUpdateAuthFailsWith400(t *testing.T) {
	router := authRouter(&fakeParser{err: errors.New("bad token")}, &fakeFinder{}, UpdateAuth)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "USR_10", errorCode(t, recorder.Body.Bytes()))
}
