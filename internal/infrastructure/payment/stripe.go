package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway creates card payment intents through the Stripe API.
type StripeGateway struct {
	intents *paymentintent.Client
}

// NewStripeGateway builds a gateway bound to secretKey. It keeps its own
// client instead of setting the package-level stripe.Key.
func NewStripeGateway(secretKey string) *StripeGateway {
	return newStripeGateway(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func newStripeGateway(secretKey string, backend stripe.Backend) *StripeGateway {
	return &StripeGateway{
		intents: &paymentintent.Client{B: backend, Key: secretKey},
	}
}

// CreateIntent returns the client secret of a new payment intent.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
