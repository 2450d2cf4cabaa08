package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/repository"
)

const (
	minSignupAge      = 18
	prefAgeFloor      = 18
	prefAgeCeiling    = 75
	defaultPrefAgeMin = 30
	defaultPrefAgeMax = 50
)

// ProfileService resolves profiles with their relations and gates profile
// completion: it validates updates all-or-nothing and triggers invite
// issuance the first time a named profile has no invite record.
type ProfileService struct {
	users      repository.UserRepository
	invites    repository.InviteRepository
	plates     repository.PlateRepository
	coins      *CoinService
	inviteSvc  *InviteService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProfileDependencies bundles requirements for the profile service.
type ProfileDependencies struct {
	UserRepo      repository.UserRepository
	InviteRepo    repository.InviteRepository
	PlateRepo     repository.PlateRepository
	CoinService   *CoinService
	InviteService *InviteService
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// ProfileUpdateInput is the accepted subset of PATCH /me. Nil fields are
// left untouched.
type ProfileUpdateInput struct {
	FirstName  *string
	LastName   *string
	Gender     *string
	Birthday   *string
	Preference *PreferenceInput
}

// PreferenceInput is the raw preference payload before clamping.
type PreferenceInput struct {
	Age     []int
	Genders []string
}

// NewProfileService builds the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{
		users:      deps.UserRepo,
		invites:    deps.InviteRepo,
		plates:     deps.PlateRepo,
		coins:      deps.CoinService,
		inviteSvc:  deps.InviteService,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Me resolves the acting user's profile with its relations and ledger
// balance loaded via explicit read-side queries.
func (s *ProfileService) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachRelations(ctx, profile)
}

// GetMatched resolves another user's profile for the viewer, enforcing a
// mutual preference match. Fails closed with domain.ErrNoMatch.
func (s *ProfileService) GetMatched(ctx context.Context, viewer *domain.Profile, targetID string) (*domain.Profile, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !viewer.MatchesPreference(target) || !target.MatchesPreference(viewer) {
		return nil, domain.ErrNoMatch
	}
	return target, nil
}

// UpdateMe applies a partial profile update. Validation is all-or-nothing:
// any violation fails before the single-statement write. On the first
// update that leaves a first name set with no invite record, an invite
// code is issued as a side effect.
func (s *ProfileService) UpdateMe(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.Profile, error) {
	profile, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	wasReady := profile.ProfileReady()

	if input.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *input.Birthday)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		candidate := domain.Profile{Birthday: &birthday}
		if age := candidate.AgeAt(time.Now()); age == nil || *age < minSignupAge {
			return nil, domain.ErrUnderage
		}
		profile.Birthday = &birthday
	}

	if input.Preference != nil {
		preference, err := sanitizePreference(*input.Preference)
		if err != nil {
			return nil, err
		}
		profile.Preference = preference
	}

	if input.FirstName != nil {
		profile.FirstName = input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = input.LastName
	}
	if input.Gender != nil {
		gender := domain.Gender(*input.Gender)
		if !domain.ValidGender(gender) {
			return nil, domain.ErrInvalidInput
		}
		profile.Gender = &gender
	}

	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.ensureInvite(ctx, profile); err != nil {
		return nil, err
	}

	if !wasReady && profile.ProfileReady() {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:   events.EventProfileCompleted,
			UserID: profile.ID,
			Payload: events.ProfileCompletedPayload{
				Name:   profile.Name(),
				Gender: (*string)(profile.Gender),
			},
		})
	}

	return s.attachRelations(ctx, profile)
}

// Delete removes the user and, through the store's cascades, their
// relations.
func (s *ProfileService) Delete(ctx context.Context, userID string) (bool, error) {
	ok, err := s.users.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return ok, nil
}

// ensureInvite issues an invite code once a named profile lacks one.
func (s *ProfileService) ensureInvite(ctx context.Context, profile *domain.Profile) error {
	if profile.FirstName == nil || *profile.FirstName == "" {
		return nil
	}
	invite, err := s.invites.GetByUser(ctx, profile.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if invite != nil {
		profile.Invite = invite
		return nil
	}

	issued, err := s.inviteSvc.IssueCode(ctx, profile)
	if err != nil {
		return err
	}
	profile.Invite = issued
	return nil
}

// attachRelations loads invite, active plate, and coin balance.
func (s *ProfileService) attachRelations(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if profile.Invite == nil {
		invite, err := s.invites.GetByUser(ctx, profile.ID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		profile.Invite = invite
	}

	plate, err := s.plates.GetActiveByUser(ctx, profile.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	profile.Plate = plate

	balance, err := s.coins.Balance(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	profile.CoinSum = balance

	return profile, nil
}

// sanitizePreference validates and clamps the raw preference payload:
// gender set must be non-empty after filtering to known values, age
// bounds default to 30/50, clamp into [18,75], and must satisfy a strict
// min < max.
func sanitizePreference(input PreferenceInput) (*domain.Preference, error) {
	if len(input.Genders) == 0 {
		return nil, domain.ErrBadPreference
	}

	genders := make([]domain.Gender, 0, len(input.Genders))
	for _, raw := range input.Genders {
		gender := domain.Gender(raw)
		if domain.ValidGender(gender) {
			genders = append(genders, gender)
		}
	}
	genders = domain.DedupeGenders(genders)
	if len(genders) == 0 {
		return nil, domain.ErrBadPreference
	}

	ageMin, ageMax := defaultPrefAgeMin, defaultPrefAgeMax
	if len(input.Age) > 0 && input.Age[0] != 0 {
		ageMin = input.Age[0]
	}
	if len(input.Age) > 1 && input.Age[1] != 0 {
		ageMax = input.Age[1]
	}
	ageMin = clampAge(ageMin)
	ageMax = clampAge(ageMax)
	if ageMin >= ageMax {
		return nil, domain.ErrBadPreference
	}

	return &domain.Preference{
		Age:     &[2]int{ageMin, ageMax},
		Genders: genders,
	}, nil
}

func clampAge(age int) int {
	if age < prefAgeFloor {
		return prefAgeFloor
	}
	if age > prefAgeCeiling {
		return prefAgeCeiling
	}
	return age
}
