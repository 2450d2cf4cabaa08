package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/service"
)

func newCoinService(store *coinStore) *service.CoinService {
	return service.NewCoinService(store, nil, nil, zap.NewNop())
}

func TestBalanceFoldsLedger(t *testing.T) {
	ctx := context.Background()
	store := newCoinStore()
	coins := newCoinService(store)

	if _, err := coins.Credit(ctx, "user-1", domain.CoinTypeInvited, 10, nil); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if _, err := coins.Credit(ctx, "user-1", domain.CoinTypeInviter, 5, nil); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	balance, err := coins.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance == nil || *balance != 15 {
		t.Errorf("Balance = %v, want 15", balance)
	}
}

func TestBalanceNilWithoutEntries(t *testing.T) {
	ctx := context.Background()
	coins := newCoinService(newCoinStore())

	balance, err := coins.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != nil {
		t.Errorf("Balance = %d, want nil for an empty ledger", *balance)
	}
}

func TestCreditRecordsProvenance(t *testing.T) {
	ctx := context.Background()
	store := newCoinStore()
	coins := newCoinService(store)

	provenance := domain.InvitedProvenance{InvitedBy: "user-9", Code: "ADA1234"}
	coin, err := coins.Credit(ctx, "user-1", domain.CoinTypeInvited, 100, provenance)
	if err != nil {
		t.Fatalf("Credit: %v", err)
	}

	var decoded domain.InvitedProvenance
	if err := json.Unmarshal(coin.Data, &decoded); err != nil {
		t.Fatalf("unmarshal provenance: %v", err)
	}
	if decoded != provenance {
		t.Errorf("provenance = %+v, want %+v", decoded, provenance)
	}

	entries, err := coins.Entries(ctx, "user-1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Type != domain.CoinTypeInvited || entries[0].Value != 100 {
		t.Errorf("entries = %+v, want one invited entry of 100", entries)
	}
}
