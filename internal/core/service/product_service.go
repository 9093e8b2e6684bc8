package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price < 0 || in.AvailableQuantity < 0 || in.MinimumOrder < 0 {
		return nil, fmt.Errorf("create product: %w", domain.ErrInvalidRequest)
	}

	p := &domain.Product{
		Name:              in.Name,
		Description:       in.Description,
		ImageURL:          in.ImageURL,
		Price:             in.Price,
		MinimumOrder:      in.MinimumOrder,
		AvailableQuantity: in.AvailableQuantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
