package domain

import (
	"strings"
	"time"
)

// Gender enumerates accepted gender values for profiles and preferences.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ValidGender reports whether g is one of the accepted enum values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Role distinguishes regular users from administrators.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Preference is a user's stated dating preference. Age is a closed
// [min,max] interval; Genders is a set of accepted genders.
type Preference struct {
	Age     *[2]int  `json:"age"`
	Genders []Gender `json:"genders"`
}

// CompletionState describes how far a profile has progressed.
type CompletionState string

const (
	CompletionIncomplete CompletionState = "INCOMPLETE"
	CompletionProfileSet CompletionState = "PROFILE_SET"
	CompletionPlateSet   CompletionState = "PLATE_SET"
)

// Verification is the 0..1 identity-verification relation of a profile.
type Verification struct {
	ID        string
	UserID    string
	Verified  bool
	CreatedAt time.Time
}

// Profile is the domain model for a user. Relations (Invite, Plate,
// Verification) and the coin sum are loaded explicitly per view; derived
// attributes are computed on read and never stored.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	FirstName    *string
	LastName     *string
	Gender       *Gender
	Birthday     *time.Time
	Preference   *Preference
	CoinSum      *int64
	Verification *Verification
	Invite       *Invite
	Plate        *Plate
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Name returns the trimmed full name, or nil when no first name is set.
func (p *Profile) Name() *string {
	if p.FirstName == nil || *p.FirstName == "" {
		return nil
	}
	last := ""
	if p.LastName != nil {
		last = *p.LastName
	}
	name := strings.TrimSpace(*p.FirstName + " " + last)
	return &name
}

// Age returns whole years since birthday, or nil when birthday is unset.
func (p *Profile) Age() *int {
	return p.AgeAt(time.Now())
}

// AgeAt computes whole years between birthday and the given instant.
func (p *Profile) AgeAt(now time.Time) *int {
	if p.Birthday == nil {
		return nil
	}
	b := *p.Birthday
	years := now.Year() - b.Year()
	anniversary := time.Date(now.Year(), b.Month(), b.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return &years
}

// Coins returns the ledger balance, or nil when the user has no entries.
// Zero is a valid balance and is distinct from nil.
func (p *Profile) Coins() *int64 {
	return p.CoinSum
}

// ProfileReady reports whether gender and preference are both set.
func (p *Profile) ProfileReady() bool {
	return p.Preference != nil && p.Gender != nil
}

// Verified reports whether a verification record exists and passed.
func (p *Profile) Verified() bool {
	return p.Verification != nil && p.Verification.Verified
}

// Completion derives the profile's completion state.
func (p *Profile) Completion() CompletionState {
	if !p.ProfileReady() {
		return CompletionIncomplete
	}
	if p.Plate != nil {
		return CompletionPlateSet
	}
	return CompletionProfileSet
}

// MatchesPreference reports whether candidate satisfies p's stated
// preference. It fails closed on a nil candidate. The age bound is
// two-sided and inclusive; an unset candidate age cannot satisfy a set
// age preference. Gender is a set-membership check.
func (p *Profile) MatchesPreference(candidate *Profile) bool {
	if candidate == nil {
		return false
	}
	if p.Preference == nil {
		return true
	}
	if p.Preference.Age != nil {
		age := candidate.Age()
		if age == nil || *age < p.Preference.Age[0] || *age > p.Preference.Age[1] {
			return false
		}
	}
	if len(p.Preference.Genders) > 0 {
		if candidate.Gender == nil {
			return false
		}
		member := false
		for _, g := range p.Preference.Genders {
			if g == *candidate.Gender {
				member = true
				break
			}
		}
		if !member {
			return false
		}
	}
	return true
}

// DedupeGenders removes duplicates while preserving first-seen order.
func DedupeGenders(in []Gender) []Gender {
	seen := make(map[Gender]struct{}, len(in))
	out := make([]Gender, 0, len(in))
	for _, g := range in {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
