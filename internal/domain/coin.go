package domain

import (
	"encoding/json"
	"time"
)

// CoinType classifies a ledger entry.
type CoinType string

const (
	CoinTypeInvited CoinType = "invited"
	CoinTypeInviter CoinType = "inviter"
)

// Coin is one append-only reward-ledger entry. Entries are never updated
// or deleted; corrections are new entries.
type Coin struct {
	ID        string
	UserID    string
	Type      CoinType
	Value     int64
	Data      json.RawMessage
	CreatedAt time.Time
}

// InvitedProvenance records who invited the redeemer and with which code.
type InvitedProvenance struct {
	InvitedBy string `json:"invitedBy"`
	Code      string `json:"code"`
}

// InviterProvenance records which user the code owner brought in.
type InviterProvenance struct {
	Invited string `json:"invited"`
}
