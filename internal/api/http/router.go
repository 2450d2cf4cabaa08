package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iludo/profile-service/internal/api/http/handlers"
	"github.com/iludo/profile-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Invites        *handlers.InviteHandler
	Plates         *handlers.PlateHandler
	Devices        *handlers.DeviceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuth())

	me := protected.Group("/me")
	me.Get("", RequireCompleteProfile(), cfg.Profiles.Me)
	me.Patch("", cfg.Profiles.UpdateMe)
	me.Delete("", cfg.Profiles.DeleteMe)

	me.Get("/invite", cfg.Invites.GetInvite)
	me.Post("/invite", cfg.Invites.Redeem)

	me.Get("/plate", cfg.Plates.GetPlate)
	me.Put("/plate", cfg.Plates.RegisterPlate)
	me.Delete("/plate", cfg.Plates.UnregisterPlate)

	me.Post("/devices", cfg.Devices.RegisterDevice)

	users := protected.Group("/users")
	users.Get("/:id", RequireCompleteProfile(), cfg.Profiles.GetUser)
	users.Post("/:id/push", auth.RequireAdmin(), cfg.Devices.Push)
}
