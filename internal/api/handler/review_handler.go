package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List handles GET /reviews.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   domain.Review
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNilReviews(reviews))
}

// Latest handles GET /reviews/latest.
//
// @Summary      Latest reviews for the home page
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   domain.Review
// @Router       /reviews/latest [get]
func (h *ReviewHandler) Latest(c echo.Context) error {
	reviews, err := h.service.Latest(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNilReviews(reviews))
}

// Create handles POST /reviews. The author is the credential subject.
//
// @Summary      Add a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	email, err := subject(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.service.Create(c.Request().Context(), ports.CreateReviewInput{
		UserEmail: email,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

func nonNilReviews(r []*domain.Review) []*domain.Review {
	if r == nil {
		return []*domain.Review{}
	}
	return r
}
