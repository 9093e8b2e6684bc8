package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent handles POST /payments/intent.
//
// @Summary      Create a card payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentIntentRequest  true  "Amount in cents"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.service.CreateIntent(c.Request().Context(), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}
