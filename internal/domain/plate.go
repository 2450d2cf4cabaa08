package domain

import "time"

// Plate is a vehicle-plate registration. Uniqueness of Value is enforced
// only among active rows; Inactive is a nullable marker so a user's
// history of rotated-out plates is kept.
type Plate struct {
	ID        string
	UserID    string
	Value     string
	Expiry    *time.Time
	Temporary bool
	Country   string
	Inactive  *bool
	CreatedAt time.Time
}

// Active reports whether this row is the user's current plate.
func (p *Plate) Active() bool {
	return p.Inactive == nil
}
