package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for the order lifecycle.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place handles POST /orders. The owner is the credential subject.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Order items"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	email, err := subject(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.PlaceOrder(c.Request().Context(), toPlaceOrderInput(req, email))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// RecordPayment handles PUT /orders/:id/payment.
//
// @Summary      Record a payment confirmation
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Order id"
// @Param        body  body      recordPaymentRequest  true  "Transaction"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{id}/payment [put]
func (h *OrderHandler) RecordPayment(c echo.Context) error {
	var req recordPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.RecordPayment(c.Request().Context(), req.OrderID, req.TransactionID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListMine handles GET /orders/mine. The email query parameter defaults to
// the credential subject and may not name anyone else.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        email   query     string  false  "Owner email (must match the credential)"
// @Param        status  query     string  false  "Filter by status"  Enums(placed, pending, delivered)
// @Success      200     {array}   orderResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /orders/mine [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	email, err := subject(c)
	if err != nil {
		return err
	}

	var req listMyOrdersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Email != "" && !strings.EqualFold(req.Email, email) {
		return fmt.Errorf("%w: orders of another user", domain.ErrInsufficientRole)
	}

	orders, err := h.service.ListForOwner(c.Request().Context(), ports.ListOrdersFilter{
		UserEmail: email,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(orders))
}

// ListAll handles GET /orders.
//
// @Summary      List every order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderList(orders))
}

// Deliver handles PUT /orders/:id/deliver. A partial fulfillment is not an
// HTTP error: the response is 200 with success=false and the failed write
// named in error.
//
// @Summary      Fulfill an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Order id"
// @Param        body  body      deliverRequest  true  "Product and amount"
// @Success      200   {object}  fulfillmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /orders/{id}/deliver [put]
func (h *OrderHandler) Deliver(c echo.Context) error {
	var req deliverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Deliver(c.Request().Context(), ports.DeliverInput{
		ProductID:   req.ProductID,
		OrderID:     req.OrderID,
		OrderAmount: req.OrderAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFulfillmentResponse(result))
}
