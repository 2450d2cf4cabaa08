package dto

import (

	"github.com/iludo/profile-service/internal/domain"
)

// ProfileView selects which field set a profile projection exposes.
type ProfileView int

const (
	// ViewPublic is what other users see of a profile.
	ViewPublic ProfileView = iota
	// ViewSelf is the owner's full view, relations included.
	ViewSelf
)

// UpdateProfileRequest is the accepted subset of PATCH /me.
type UpdateProfileRequest struct {
	FirstName  *string            `json:"firstName"`
	LastName   *string            `json:"lastName"`
	Gender     *string            `json:"gender"`
	Birthday   *string            `json:"birthday"`
	Preference *PreferenceRequest `json:"preference"`
}

// PreferenceRequest is the raw preference payload.
type PreferenceRequest struct {
	Age     []int    `json:"age"`
	Genders []string `json:"genders"`
}

// PreferenceResponse mirrors the stored preference.
type PreferenceResponse struct {
	Age     *[2]int  `json:"age"`
	Genders []string `json:"genders"`
}

// ProfileResponse is a projected profile. Fields absent from the selected
// view stay nil and are omitted on the wire.
type ProfileResponse struct {
	ID        string              `json:"id"`
	Name      *string             `json:"name"`
	Gender    *string             `json:"gender,omitempty"`
	Age       *int                `json:"age,omitempty"`
	FirstName *string             `json:"firstName,omitempty"`
	LastName  *string             `json:"lastName,omitempty"`
	Birthday  *string             `json:"birthday,omitempty"`
	Coins     *int64              `json:"coins,omitempty"`
	Pref      *PreferenceResponse `json:"preference,omitempty"`
	Plate     *PlateResponse      `json:"plate,omitempty"`
	Invite    *InviteResponse     `json:"invite,omitempty"`
	Verified  *bool               `json:"verified,omitempty"`
}

// ProjectProfile renders the field set for the requested view. Both views
// are explicit enumerations, not a type hierarchy.
func ProjectProfile(profile *domain.Profile, view ProfileView) ProfileResponse {
	out := ProfileResponse{
		ID:     profile.ID,
		Name:   profile.Name(),
		Gender: (*string)(profile.Gender),
		Age:    profile.Age(),
	}
	if view == ViewPublic {
		return out
	}

	out.FirstName = profile.FirstName
	out.LastName = profile.LastName
	if profile.Birthday != nil {
		birthday := profile.Birthday.Format("2006-01-02")
		out.Birthday = &birthday
	}
	out.Coins = profile.Coins()
	if profile.Preference != nil {
		genders := make([]string, 0, len(profile.Preference.Genders))
		for _, g := range profile.Preference.Genders {
			genders = append(genders, string(g))
		}
		out.Pref = &PreferenceResponse{Age: profile.Preference.Age, Genders: genders}
	}
	if profile.Plate != nil {
		plate := NewPlateResponse(profile.Plate)
		out.Plate = &plate
	}
	if profile.Invite != nil {
		invite := NewInviteResponse(profile.Invite)
		out.Invite = &invite
	}
	verified := profile.Verified()
	out.Verified = &verified
	return out
}
