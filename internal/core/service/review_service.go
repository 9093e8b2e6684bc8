package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// latestReviewCount is how many reviews the storefront home page shows.
const latestReviewCount = 6

type ReviewService struct {
	repo ports.ReviewRepository
	log  zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.List(ctx)
}

func (s *ReviewService) Latest(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.Latest(ctx, latestReviewCount)
}

func (s *ReviewService) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if in.UserEmail == "" || in.Rating < 0 || in.Rating > 5 {
		return nil, fmt.Errorf("create review: %w", domain.ErrInvalidRequest)
	}

	r := &domain.Review{
		UserEmail: in.UserEmail,
		Name:      in.Name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		s.log.Error().Err(err).Msg("failed to create review")
		return nil, err
	}
	return r, nil
}
