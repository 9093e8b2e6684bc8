package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

const paymentCurrency = "usd"

// PaymentService delegates intent creation to the payment processor and
// hands back only the opaque client secret.
type PaymentService struct {
	gateway ports.PaymentGateway
	log     zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, log zerolog.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, log: log}
}

func (s *PaymentService) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("create payment intent: %w: amount must be positive", domain.ErrInvalidRequest)
	}

	secret, err := s.gateway.CreateIntent(ctx, amountCents, paymentCurrency)
	if err != nil {
		s.log.Error().Err(err).Int64("amount", amountCents).Msg("payment intent failed")
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return secret, nil
}
