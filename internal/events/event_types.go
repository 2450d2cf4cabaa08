package events

import (
	"time"

	"github.com/iludo/profile-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProfileCompleted EventType = "profile_completed"
	EventInviteIssued     EventType = "invite_issued"
	EventInviteRedeemed   EventType = "invite_redeemed"
	EventCoinsCredited    EventType = "coins_credited"
	EventPlateRegistered  EventType = "plate_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProfileCompletedPayload payload.
type ProfileCompletedPayload struct {
	Name   *string `json:"name,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// InviteIssuedPayload payload.
type InviteIssuedPayload struct {
	InviteCode string `json:"invite_code"`
}

// InviteRedeemedPayload payload.
type InviteRedeemedPayload struct {
	InviterID    string `json:"inviter_id"`
	RedeemedCode string `json:"redeemed_code"`
}

// CoinsCreditedPayload payload.
type CoinsCreditedPayload struct {
	Type  domain.CoinType `json:"type"`
	Value int64           `json:"value"`
}

// PlateRegisteredPayload payload.
type PlateRegisteredPayload struct {
	Value   string `json:"value"`
	Country string `json:"country"`
}
