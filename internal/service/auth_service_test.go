package service_test

import (
	"context"
	"testing"

	"github.com/iludo/profile-service/internal/config"
	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/service"
)

func newAuthService(users *userStore) *service.AuthService {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
	return service.NewAuthService(cfg, users)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newUserStore()
	svc := newAuthService(users)

	profile, token, _, err := svc.Register(ctx, "Ada@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.Email != "ada@example.com" {
		t.Errorf("email = %q, want lowercased", profile.Email)
	}
	if profile.Role != domain.RoleUser {
		t.Errorf("role = %q, want USER", profile.Role)
	}
	if token == "" {
		t.Error("empty token")
	}

	if _, _, _, err := svc.Register(ctx, "ada@example.com", "another"); err == nil {
		t.Error("duplicate Register succeeded")
	}

	logged, _, _, err := svc.Login(ctx, "ADA@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != profile.ID {
		t.Errorf("Login returned %s, want %s", logged.ID, profile.ID)
	}

	if _, _, _, err := svc.Login(ctx, "ada@example.com", "wrong"); err == nil {
		t.Error("Login with wrong password succeeded")
	}
}
