package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/persistence"
	"github.com/iludo/profile-service/internal/repository"
)

const balanceCacheTTL = 5 * time.Minute

// CoinService exposes the reward ledger: append-only credits and a
// derived balance, cached read-aside in Redis.
type CoinService struct {
	coins      repository.CoinRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCoinService builds the service.
func NewCoinService(coins repository.CoinRepository, cache *persistence.Redis, dispatcher events.Dispatcher, logger *zap.Logger) *CoinService {
	return &CoinService{coins: coins, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Credit appends one immutable ledger entry. Corrections are new entries,
// never edits.
func (s *CoinService) Credit(ctx context.Context, userID string, coinType domain.CoinType, value int64, provenance any) (*domain.Coin, error) {
	var data json.RawMessage
	if provenance != nil {
		encoded, err := json.Marshal(provenance)
		if err != nil {
			return nil, err
		}
		data = encoded
	}

	coin := &domain.Coin{
		UserID: userID,
		Type:   coinType,
		Value:  value,
		Data:   data,
	}
	if err := s.coins.Credit(ctx, coin); err != nil {
		return nil, err
	}
	s.Invalidate(ctx, userID)

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventCoinsCredited,
		UserID: userID,
		Payload: events.CoinsCreditedPayload{
			Type:  coinType,
			Value: value,
		},
	})
	return coin, nil
}

// Balance folds the ledger for a user. A nil result means the user has no
// entries at all, which is distinct from a zero balance.
func (s *CoinService) Balance(ctx context.Context, userID string) (*int64, error) {
	key := balanceKey(userID)
	if cached, ok := s.cache.GetInt64(ctx, key); ok {
		return &cached, nil
	}

	sum, err := s.coins.SumByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sum != nil {
		s.cache.SetInt64(ctx, key, *sum, balanceCacheTTL)
	}
	return sum, nil
}

// Entries lists a user's ledger entries in insertion order.
func (s *CoinService) Entries(ctx context.Context, userID string) ([]domain.Coin, error) {
	return s.coins.ListByUser(ctx, userID)
}

// Invalidate drops the cached balance after the ledger changed.
func (s *CoinService) Invalidate(ctx context.Context, userID string) {
	s.cache.Del(ctx, balanceKey(userID))
}

func balanceKey(userID string) string {
	return "coins:balance:" + userID
}
