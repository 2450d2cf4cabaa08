package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/iludo/profile-service/internal/config"
	"github.com/iludo/profile-service/internal/domain"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/repository"
)

const inviteCodeNameLen = 8

// InviteService owns invite-code issuance and one-time redemption.
type InviteService struct {
	invites    repository.InviteRepository
	coins      *CoinService
	rewards    config.RewardsConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// InviteDependencies bundles requirements for the invite service.
type InviteDependencies struct {
	InviteRepo  repository.InviteRepository
	CoinService *CoinService
	Rewards     config.RewardsConfig
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewInviteService builds the service.
func NewInviteService(deps InviteDependencies) *InviteService {
	return &InviteService{
		invites:    deps.InviteRepo,
		coins:      deps.CoinService,
		rewards:    deps.Rewards,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Get returns the user's own invite record.
func (s *InviteService) Get(ctx context.Context, userID string) (*domain.Invite, error) {
	invite, err := s.invites.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return invite, nil
}

// IssueCode creates the user's invite record with a freshly generated
// code. The caller enforces the "no invite yet" precondition; the unique
// index on user_id backstops it.
func (s *InviteService) IssueCode(ctx context.Context, profile *domain.Profile) (*domain.Invite, error) {
	first, last := "", ""
	if profile.FirstName != nil {
		first = *profile.FirstName
	}
	if profile.LastName != nil {
		last = *profile.LastName
	}

	invite := &domain.Invite{
		UserID:     profile.ID,
		InviteCode: GenerateInviteCode(first, last),
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.Info("invite code issued",
		zap.String("user_id", profile.ID),
		zap.String("code", invite.InviteCode))
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventInviteIssued,
		UserID:  profile.ID,
		Payload: events.InviteIssuedPayload{InviteCode: invite.InviteCode},
	})
	return invite, nil
}

// Redeem links the caller's invite record to the owner of the given code
// and credits both sides, atomically. Precondition order matters for the
// wire statuses: already-invited (403) before unknown code (404) before
// missing own invite (406).
func (s *InviteService) Redeem(ctx context.Context, userID, code string) (*domain.Invite, error) {
	own, err := s.invites.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if own != nil && own.Redeemed() {
		return nil, domain.ErrAlreadyInvited
	}

	owner, err := s.invites.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}

	if own == nil {
		return nil, domain.ErrInviteNotReady
	}

	invited := &domain.Coin{
		UserID: userID,
		Type:   domain.CoinTypeInvited,
		Value:  s.rewards.InvitedCoins,
		Data:   mustJSON(domain.InvitedProvenance{InvitedBy: owner.UserID, Code: owner.InviteCode}),
	}
	inviter := &domain.Coin{
		UserID: owner.UserID,
		Type:   domain.CoinTypeInviter,
		Value:  s.rewards.InviterCoins,
		Data:   mustJSON(domain.InviterProvenance{Invited: userID}),
	}

	redeemed, err := s.invites.RedeemAtomic(ctx, userID, owner.UserID, owner.InviteCode, invited, inviter)
	if err != nil {
		return nil, err
	}

	s.coins.Invalidate(ctx, userID)
	s.coins.Invalidate(ctx, owner.UserID)

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:   events.EventInviteRedeemed,
		UserID: userID,
		Payload: events.InviteRedeemedPayload{
			InviterID:    owner.UserID,
			RedeemedCode: owner.InviteCode,
		},
	})
	return redeemed, nil
}

// GenerateInviteCode derives a code from the user's name: accents are
// normalized away, non-word characters dropped, the remainder uppercased
// and capped at 8 characters, then a random 4-digit suffix is appended.
func GenerateInviteCode(firstName, lastName string) string {
	base := normalizeName(firstName + lastName)
	if len(base) > inviteCodeNameLen {
		base = base[:inviteCodeNameLen]
	}
	return fmt.Sprintf("%s%d", base, 1000+rand.Intn(9000))
}

// normalizeName transliterates to uppercase ASCII word characters.
func normalizeName(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	for _, r := range stripped {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func mustJSON(v any) []byte {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return encoded
}
