package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/dto"
	"github.com/iludo/profile-service/internal/auth"
	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/service"
	apperrors "github.com/iludo/profile-service/pkg/util/errorutil"
	"github.com/iludo/profile-service/pkg/util/validate"
)

const clientHeader = "X-Iludo-Client"

// DeviceHandler manages push-device registration and admin dispatch.
type DeviceHandler struct {
	notifications *service.NotificationService
}

// NewDeviceHandler constructs handler.
func NewDeviceHandler(notificationService *service.NotificationService) *DeviceHandler {
	return &DeviceHandler{notifications: notificationService}
}

// RegisterDevice POST /me/devices.
func (h *DeviceHandler) RegisterDevice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	platform := domain.DevicePlatform(req.Platform)
	if err := h.notifications.RegisterDevice(c.Context(), principal.User.ID, req.Token, c.Get(clientHeader), platform); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Push POST /users/:id/push (admin).
func (h *DeviceHandler) Push(c *fiber.Ctx) error {
	var req dto.PushRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Notification) == 0 {
		return apperrors.NewValidationError("notification body required", nil)
	}

	sent, err := h.notifications.SendToUser(c.Context(), c.Params("id"), req.Notification)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"devices": sent}})
}
