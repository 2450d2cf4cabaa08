package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/dto"
	"github.com/iludo/profile-service/internal/service"
	apperrors "github.com/iludo/profile-service/pkg/util/errorutil"
	"github.com/iludo/profile-service/pkg/util/validate"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	profile, token, exp, err := h.authService.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user":  dto.ProjectProfile(profile, dto.ViewSelf),
			"token": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	profile, token, exp, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user":  dto.ProjectProfile(profile, dto.ViewSelf),
			"token": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
