package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/service"
)

func newPlateService(store *plateStore) *service.PlateService {
	return service.NewPlateService(store, nil, zap.NewNop())
}

func TestRegisterPlateNormalizes(t *testing.T) {
	ctx := context.Background()
	svc := newPlateService(newPlateStore())

	plate, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "  b-xy 123 ", Country: "Germany"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if plate.Value != "B-XY 123" {
		t.Errorf("Value = %q, want %q", plate.Value, "B-XY 123")
	}
	if plate.Country != "DE" {
		t.Errorf("Country = %q, want DE", plate.Country)
	}
}

func TestRegisterPlateConflict(t *testing.T) {
	ctx := context.Background()
	svc := newPlateService(newPlateStore())

	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "B-XY 123", Country: "DE"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "user-2", service.PlateInput{Value: "b-xy 123", Country: "DE"}); !errors.Is(err, domain.ErrPlateTaken) {
		t.Fatalf("Register err = %v, want ErrPlateTaken", err)
	}
}

func TestRegisterPlateRotation(t *testing.T) {
	ctx := context.Background()
	store := newPlateStore()
	svc := newPlateService(store)

	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "B-XY 123", Country: "DE"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "HH-AB 99", Country: "DE"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	active, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if active.Value != "HH-AB 99" {
		t.Errorf("active plate = %q, want HH-AB 99", active.Value)
	}

	// The freed value is registrable again by someone else.
	if _, err := svc.Register(ctx, "user-2", service.PlateInput{Value: "B-XY 123", Country: "DE"}); err != nil {
		t.Errorf("Register freed value: %v", err)
	}
}

func TestUnregisterPlate(t *testing.T) {
	ctx := context.Background()
	svc := newPlateService(newPlateStore())

	if _, err := svc.Unregister(ctx, "user-1"); !errors.Is(err, domain.ErrPlateNotFound) {
		t.Fatalf("Unregister err = %v, want ErrPlateNotFound", err)
	}

	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "B-XY 123", Country: "DE"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ok, err := svc.Unregister(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("Unregister = %v, %v, want true", ok, err)
	}
	if _, err := svc.Get(ctx, "user-1"); !errors.Is(err, domain.ErrPlateNotFound) {
		t.Errorf("Get after unregister err = %v, want ErrPlateNotFound", err)
	}
}

func TestRegisterPlateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newPlateService(newPlateStore())

	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "   ", Country: "DE"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank value err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Register(ctx, "user-1", service.PlateInput{Value: "B-XY 123", Country: "Atlantis"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown country err = %v, want ErrInvalidInput", err)
	}
}
