package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/dto"
	"github.com/iludo/profile-service/internal/auth"
	"github.com/iludo/profile-service/internal/service"
	apperrors "github.com/iludo/profile-service/pkg/util/errorutil"
)

// ProfileHandler manages the /me profile surface.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profileService}
}

// Me GET /me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	profile, err := h.profiles.Me(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProjectProfile(profile, dto.ViewSelf)})
}

// UpdateMe PATCH /me.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProfileUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Birthday:  req.Birthday,
	}
	if req.Preference != nil {
		input.Preference = &service.PreferenceInput{
			Age:     req.Preference.Age,
			Genders: req.Preference.Genders,
		}
	}

	profile, err := h.profiles.UpdateMe(c.Context(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProjectProfile(profile, dto.ViewSelf)})
}

// DeleteMe DELETE /me.
func (h *ProfileHandler) DeleteMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	success, err := h.profiles.Delete(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": success})
}

// GetUser GET /users/:id — public projection, gated on a mutual match.
func (h *ProfileHandler) GetUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	target, err := h.profiles.GetMatched(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProjectProfile(target, dto.ViewPublic)})
}
