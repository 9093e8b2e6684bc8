package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs the user up on first use, merges the submitted profile fields
// and returns a fresh credential.
//
// @Summary      Login or sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        email  path      string          true   "User email"
// @Param        body   body      profileRequest  false  "Profile fields to store"
// @Success      200    {object}  authResponse
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /auth/{email} [put]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, toProfile(req.profileRequest))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
