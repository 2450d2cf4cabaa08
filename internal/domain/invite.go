package domain

import "time"

// Invite is a user's one invite record: the code they can hand out, plus
// the redemption fields that are written at most once.
type Invite struct {
	ID           string
	UserID       string
	InviteCode   string
	InviterID    *string
	RedeemedCode *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Redeemed reports whether this user has already redeemed someone's code.
func (i *Invite) Redeemed() bool {
	return i.RedeemedCode != nil
}
