package dto

import (
	"time"

	"github.com/iludo/profile-service/internal/domain"
)

// RedeemInviteRequest carries the code to redeem.
type RedeemInviteRequest struct {
	Code string `json:"code" validate:"required"`
}

// InviteResponse mirrors an invite record.
type InviteResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	InviteCode   string    `json:"inviteCode"`
	InviterID    *string   `json:"inviterId"`
	RedeemedCode *string   `json:"redeemedCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewInviteResponse converts the domain record.
func NewInviteResponse(invite *domain.Invite) InviteResponse {
	return InviteResponse{
		ID:           invite.ID,
		UserID:       invite.UserID,
		InviteCode:   invite.InviteCode,
		InviterID:    invite.InviterID,
		RedeemedCode: invite.RedeemedCode,
		CreatedAt:    invite.CreatedAt,
	}
}
