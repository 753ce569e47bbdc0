package services

import (
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/charge"
)

// StripeService charges card tokens through the Stripe Charges API.
type StripeService struct {
	SecretKey string
}

func NewStripeService(secretKey string, timeout time.Duration) *StripeService {
	stripe.Key = secretKey
	stripe.SetHTTPClient(&http.Client{Timeout: timeout})
	return &StripeService{SecretKey: secretKey}
}

// ChargeCard charges the given amount (in currency units) against a card
// token, tagging the charge with the order id. Amounts are sent to
// Stripe in cents.
func (s *StripeService) ChargeCard(amount float64, sourceToken, orderID string) (*stripe.Charge, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(amount * 100)),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String("Example charge"),
	}
	if err := params.SetSource(sourceToken); err != nil {
		return nil, err
	}
	params.AddMetadata("order_id", orderID)

	return charge.New(params)
}
