package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// UserHandler serves self-service profile routes and admin user management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /users/me.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	email, err := subject(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /users/me.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields to store"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	email, err := subject(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), email, toProfile(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// AdminStatus handles GET /users/:email/admin. It is open and reveals only
// a boolean; an unknown email reports false.
//
// @Summary      Check whether a user is an administrator
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  adminStatusResponse
// @Failure      400    {object}  errorResponse
// @Router       /users/{email}/admin [get]
func (h *UserHandler) AdminStatus(c echo.Context) error {
	var req emailParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.service.IsAdmin(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatusResponse{Admin: admin})
}

// Promote handles PUT /users/:email/admin.
//
// @Summary      Grant the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  successResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email}/admin [put]
func (h *UserHandler) Promote(c echo.Context) error {
	var req emailParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Promote(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Remove handles DELETE /users/:email. Administrators are never removed;
// the response then carries success=false.
//
// @Summary      Remove a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  successResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{email} [delete]
func (h *UserHandler) Remove(c echo.Context) error {
	var req emailParam
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	removed, err := h.service.Remove(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: removed})
}
