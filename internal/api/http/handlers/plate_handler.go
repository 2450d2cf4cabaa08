package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/dto"
	"github.com/iludo/profile-service/internal/auth"
	"github.com/iludo/profile-service/internal/service"
	apperrors "github.com/iludo/profile-service/pkg/util/errorutil"
	"github.com/iludo/profile-service/pkg/util/validate"
)

// PlateHandler manages the /me/plate surface.
type PlateHandler struct {
	plates *service.PlateService
}

// NewPlateHandler constructs handler.
func NewPlateHandler(plateService *service.PlateService) *PlateHandler {
	return &PlateHandler{plates: plateService}
}

// GetPlate GET /me/plate.
func (h *PlateHandler) GetPlate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	plate, err := h.plates.Get(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlateResponse(plate)})
}

// RegisterPlate PUT /me/plate.
func (h *PlateHandler) RegisterPlate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RegisterPlateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	input := service.PlateInput{
		Value:     req.Plate,
		Temporary: req.Temporary,
		Country:   req.Country,
	}
	if req.Expiry != "" {
		expiry, err := time.Parse("2006-01-02", req.Expiry)
		if err != nil {
			return apperrors.NewValidationError("invalid expiry date", nil)
		}
		input.Expiry = &expiry
	}

	plate, err := h.plates.Register(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlateResponse(plate)})
}

// UnregisterPlate DELETE /me/plate.
func (h *PlateHandler) UnregisterPlate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	success, err := h.plates.Unregister(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": success})
}
