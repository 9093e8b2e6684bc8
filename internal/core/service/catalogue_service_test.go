package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

func TestProductService_CreateAndDelete(t *testing.T) {
	repo := newMemProducts()
	svc := NewProductService(repo, zerolog.Nop())
	ctx := context.Background()

	p, err := svc.Create(ctx, ports.CreateProductInput{Name: "Widget", Price: 3, AvailableQuantity: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableQuantity)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Create(ctx, ports.CreateProductInput{Name: "", Price: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

type stubReviews struct {
	created []*domain.Review
	latestN int
}

func (s *stubReviews) List(context.Context) ([]*domain.Review, error) { return s.created, nil }

func (s *stubReviews) Latest(_ context.Context, n int) ([]*domain.Review, error) {
	s.latestN = n
	return s.created, nil
}

func (s *stubReviews) Create(_ context.Context, r *domain.Review) error {
	r.ID = "r1"
	s.created = append(s.created, r)
	return nil
}

func TestReviewService(t *testing.T) {
	repo := &stubReviews{}
	svc := NewReviewService(repo, zerolog.Nop())
	ctx := context.Background()

	r, err := svc.Create(ctx, ports.CreateReviewInput{UserEmail: "cust@example.com", Name: "Cust", Rating: 4.5, Comment: "great"})
	require.NoError(t, err)
	assert.Equal(t, "cust@example.com", r.UserEmail)
	assert.False(t, r.CreatedAt.IsZero())

	_, err = svc.Create(ctx, ports.CreateReviewInput{UserEmail: "cust@example.com", Rating: 5.5})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, repo.latestN)
}

type stubGateway struct {
	amount   int64
	currency string
	err      error
}

func (g *stubGateway) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	g.amount, g.currency = amount, currency
	if g.err != nil {
		return "", g.err
	}
	return "pi_123_secret_456", nil
}

func TestPaymentService_CreateIntent(t *testing.T) {
	gw := &stubGateway{}
	svc := NewPaymentService(gw, zerolog.Nop())

	secret, err := svc.CreateIntent(context.Background(), 2500)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)
	assert.Equal(t, int64(2500), gw.amount)
	assert.Equal(t, "usd", gw.currency)

	_, err = svc.CreateIntent(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	gw.err = errors.New("card_declined")
	_, err = svc.CreateIntent(context.Background(), 100)
	assert.Error(t, err)
}
