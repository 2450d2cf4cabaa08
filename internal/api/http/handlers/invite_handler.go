package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/dto"
	"github.com/iludo/profile-service/internal/auth"
	"github.com/iludo/profile-service/internal/service"
	apperrors "github.com/iludo/profile-service/pkg/util/errorutil"
	"github.com/iludo/profile-service/pkg/util/validate"
)

// InviteHandler manages the /me/invite surface.
type InviteHandler struct {
	invites *service.InviteService
}

// NewInviteHandler constructs handler.
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: inviteService}
}

// GetInvite GET /me/invite.
func (h *InviteHandler) GetInvite(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	invite, err := h.invites.Get(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInviteResponse(invite)})
}

// Redeem POST /me/invite.
func (h *InviteHandler) Redeem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.RedeemInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	invite, err := h.invites.Redeem(c.Context(), principal.User.ID, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewInviteResponse(invite)})
}
