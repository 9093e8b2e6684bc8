package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products and GET /admin/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	var req productIDParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Availability handles GET /products/:id/availability.
//
// @Summary      Get the available quantity of a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  availabilityResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id}/availability [get]
func (h *ProductHandler) Availability(c echo.Context) error {
	var req productIDParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{
		ProductID:         product.ID,
		AvailableQuantity: product.AvailableQuantity,
	})
}

// Create handles POST /products.
//
// @Summary      Add a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		Price:             req.Price,
		MinimumOrder:      req.MinimumOrder,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	var req productIDParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
