package ports

import "context"

// PaymentGateway creates payment intents at the external processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// PaymentService exposes payment-intent creation to handlers.
type PaymentService interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// PaymentDedup remembers which payment confirmations were already applied.
type PaymentDedup interface {
	IsDuplicate(ctx context.Context, orderID, transactionID string) (bool, error)
	Mark(ctx context.Context, orderID, transactionID string) error
}
