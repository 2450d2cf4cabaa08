package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/repository"
)

// PlateService owns the plate registration workflow: global uniqueness
// among active plates plus rotation of the caller's own plate.
type PlateService struct {
	plates     repository.PlateRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PlateInput describes a registration request.
type PlateInput struct {
	Value     string
	Expiry    *time.Time
	Temporary bool
	Country   string
}

// NewPlateService builds the service.
func NewPlateService(plates repository.PlateRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PlateService {
	return &PlateService{plates: plates, dispatcher: dispatcher, logger: logger}
}

// Get returns the caller's active plate.
func (s *PlateService) Get(ctx context.Context, userID string) (*domain.Plate, error) {
	plate, err := s.plates.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlateNotFound
		}
		return nil, err
	}
	return plate, nil
}

// Register deactivates the caller's prior plates and inserts the new one.
// Fails with domain.ErrPlateTaken when another user actively holds the
// value; the repository runs the check-then-insert in one transaction.
func (s *PlateService) Register(ctx context.Context, userID string, input PlateInput) (*domain.Plate, error) {
	value := strings.ToUpper(strings.TrimSpace(input.Value))
	if value == "" {
		return nil, domain.ErrInvalidInput
	}
	country, err := normalizeCountry(input.Country)
	if err != nil {
		return nil, err
	}

	plate := &domain.Plate{
		UserID:    userID,
		Value:     value,
		Expiry:    input.Expiry,
		Temporary: input.Temporary,
		Country:   country,
	}
	if err := s.plates.RegisterAtomic(ctx, plate); err != nil {
		return nil, err
	}

	s.logger.Info("plate registered",
		zap.String("user_id", userID),
		zap.String("value", value),
		zap.String("country", country))
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventPlateRegistered,
		UserID: userID,
		Payload: events.PlateRegisteredPayload{
			Value:   value,
			Country: country,
		},
	})
	return plate, nil
}

// Unregister deletes the caller's active plate.
func (s *PlateService) Unregister(ctx context.Context, userID string) (bool, error) {
	ok, err := s.plates.DeleteActive(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrPlateNotFound
		}
		return false, err
	}
	return ok, nil
}

// normalizeCountry resolves a country name or code to ISO alpha-2.
func normalizeCountry(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrInvalidInput
	}
	country := countries.ByName(trimmed)
	if country == countries.Unknown {
		return "", domain.ErrInvalidInput
	}
	return country.Alpha2(), nil
}
