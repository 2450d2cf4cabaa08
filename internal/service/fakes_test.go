package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iludo/profile-service/internal/domain"
)

// In-memory stores honoring the repository contracts, including the
// sentinel errors the transactional paths surface.

type userStore struct {
	nextID int
	byID   map[string]*domain.Profile
}

func newUserStore() *userStore {
	return &userStore{byID: map[string]*domain.Profile{}}
}

func (s *userStore) Create(_ context.Context, profile *domain.Profile) error {
	s.nextID++
	profile.ID = fmt.Sprintf("user-%d", s.nextID)
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	stored := *profile
	s.byID[profile.ID] = &stored
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	stored, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	profile := *stored
	return &profile, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, stored := range s.byID {
		if stored.Email == email {
			profile := *stored
			return &profile, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *userStore) UpdateProfile(_ context.Context, profile *domain.Profile) error {
	if _, ok := s.byID[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *profile
	stored.Invite = nil
	stored.Plate = nil
	stored.CoinSum = nil
	stored.UpdatedAt = time.Now()
	s.byID[profile.ID] = &stored
	profile.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *userStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, pgx.ErrNoRows
	}
	delete(s.byID, id)
	return true, nil
}

type coinStore struct {
	nextID  int
	entries []domain.Coin
}

func newCoinStore() *coinStore {
	return &coinStore{}
}

func (s *coinStore) Credit(_ context.Context, coin *domain.Coin) error {
	s.append(coin)
	return nil
}

func (s *coinStore) append(coin *domain.Coin) {
	s.nextID++
	coin.ID = fmt.Sprintf("coin-%d", s.nextID)
	coin.CreatedAt = time.Now()
	s.entries = append(s.entries, *coin)
}

func (s *coinStore) SumByUser(_ context.Context, userID string) (*int64, error) {
	var sum int64
	found := false
	for _, entry := range s.entries {
		if entry.UserID == userID {
			sum += entry.Value
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	return &sum, nil
}

func (s *coinStore) ListByUser(_ context.Context, userID string) ([]domain.Coin, error) {
	var out []domain.Coin
	for _, entry := range s.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type inviteStore struct {
	nextID int
	byUser map[string]*domain.Invite
	coins  *coinStore
}

func newInviteStore(coins *coinStore) *inviteStore {
	return &inviteStore{byUser: map[string]*domain.Invite{}, coins: coins}
}

func (s *inviteStore) Create(_ context.Context, invite *domain.Invite) error {
	if _, ok := s.byUser[invite.UserID]; ok {
		return fmt.Errorf("duplicate invite for user %s", invite.UserID)
	}
	s.nextID++
	invite.ID = fmt.Sprintf("invite-%d", s.nextID)
	invite.CreatedAt = time.Now()
	invite.UpdatedAt = invite.CreatedAt
	stored := *invite
	s.byUser[invite.UserID] = &stored
	return nil
}

func (s *inviteStore) GetByUser(_ context.Context, userID string) (*domain.Invite, error) {
	stored, ok := s.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	invite := *stored
	return &invite, nil
}

func (s *inviteStore) GetByCode(_ context.Context, code string) (*domain.Invite, error) {
	for _, stored := range s.byUser {
		if stored.InviteCode == code {
			invite := *stored
			return &invite, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *inviteStore) RedeemAtomic(_ context.Context, redeemerUserID, ownerUserID, code string, invited, inviter *domain.Coin) (*domain.Invite, error) {
	own, ok := s.byUser[redeemerUserID]
	if !ok {
		return nil, domain.ErrInviteNotReady
	}
	if own.Redeemed() {
		return nil, domain.ErrAlreadyInvited
	}
	own.InviterID = &ownerUserID
	own.RedeemedCode = &code
	own.UpdatedAt = time.Now()
	s.coins.append(invited)
	s.coins.append(inviter)
	invite := *own
	return &invite, nil
}

type plateStore struct {
	nextID int
	plates []*domain.Plate
}

func newPlateStore() *plateStore {
	return &plateStore{}
}

func (s *plateStore) GetActiveByUser(_ context.Context, userID string) (*domain.Plate, error) {
	for i := len(s.plates) - 1; i >= 0; i-- {
		stored := s.plates[i]
		if stored.UserID == userID && stored.Inactive == nil {
			plate := *stored
			return &plate, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *plateStore) RegisterAtomic(_ context.Context, plate *domain.Plate) error {
	for _, stored := range s.plates {
		if stored.Value == plate.Value && stored.Inactive == nil && stored.UserID != plate.UserID {
			return domain.ErrPlateTaken
		}
	}
	inactive := true
	for _, stored := range s.plates {
		if stored.UserID == plate.UserID && stored.Inactive == nil {
			stored.Inactive = &inactive
		}
	}
	s.nextID++
	plate.ID = fmt.Sprintf("plate-%d", s.nextID)
	plate.CreatedAt = time.Now()
	stored := *plate
	s.plates = append(s.plates, &stored)
	return nil
}

func (s *plateStore) DeleteActive(_ context.Context, userID string) (bool, error) {
	inactive := true
	found := false
	for _, stored := range s.plates {
		if stored.UserID == userID && stored.Inactive == nil {
			stored.Inactive = &inactive
			found = true
		}
	}
	if !found {
		return false, pgx.ErrNoRows
	}
	return true, nil
}

type deviceStore struct {
	nextID  int
	devices []domain.Device
}

func newDeviceStore() *deviceStore {
	return &deviceStore{}
}

func (s *deviceStore) Create(_ context.Context, device *domain.Device) error {
	s.nextID++
	device.ID = fmt.Sprintf("device-%d", s.nextID)
	device.CreatedAt = time.Now()
	s.devices = append(s.devices, *device)
	return nil
}

func (s *deviceStore) GetByToken(_ context.Context, token string) (*domain.Device, error) {
	for _, stored := range s.devices {
		if stored.Token == token {
			device := stored
			return &device, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *deviceStore) ListByUser(_ context.Context, userID string) ([]domain.Device, error) {
	var out []domain.Device
	for _, stored := range s.devices {
		if stored.UserID == userID {
			out = append(out, stored)
		}
	}
	return out, nil
}
