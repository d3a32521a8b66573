package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient replaces the client instance, for tests.
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// CreatePaymentIntent registers a charge attempt with the provider and returns
// the provider payment intent. Its ID is the idempotency key reconciliation
// correlates webhook events against.
func CreatePaymentIntent(amount int64, currency string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	sc := GetStripeClient()
	params := stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		Metadata: metadata,
	}
	return sc.V1PaymentIntents.Create(context.Background(), &params)
}
