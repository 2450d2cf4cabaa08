package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iludo/profile-service/internal/domain"
)

// InviteRepository persists invite records and owns the transactional
// redemption workflow.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByUser(ctx context.Context, userID string) (*domain.Invite, error)
	GetByCode(ctx context.Context, code string) (*domain.Invite, error)
	// RedeemAtomic links the redeemer's invite to the code owner and
	// credits both coin entries in one transaction. It re-checks the
	// one-time-redemption precondition under a row lock so a concurrent
	// racer fails with domain.ErrAlreadyInvited instead of double
	// crediting.
	RedeemAtomic(ctx context.Context, redeemerUserID, ownerUserID, code string, invited, inviter *domain.Coin) (*domain.Invite, error)
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository returns a Postgres-backed implementation.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

const inviteColumns = `id, user_id, invite_code, inviter_id, redeemed_code, created_at, updated_at`

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (user_id, invite_code)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		invite.UserID,
		invite.InviteCode,
	).Scan(&invite.ID, &invite.CreatedAt, &invite.UpdatedAt)
}

func (r *inviteRepository) GetByUser(ctx context.Context, userID string) (*domain.Invite, error) {
	const query = `SELECT ` + inviteColumns + ` FROM invites WHERE user_id=$1`
	return fetchInvite(ctx, r.pool, query, userID)
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	const query = `SELECT ` + inviteColumns + ` FROM invites WHERE invite_code=$1`
	return fetchInvite(ctx, r.pool, query, code)
}

func fetchInvite(ctx context.Context, db DB, query string, arg any) (*domain.Invite, error) {
	var invite domain.Invite
	if err := db.QueryRow(ctx, query, arg).Scan(
		&invite.ID,
		&invite.UserID,
		&invite.InviteCode,
		&invite.InviterID,
		&invite.RedeemedCode,
		&invite.CreatedAt,
		&invite.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) RedeemAtomic(ctx context.Context, redeemerUserID, ownerUserID, code string, invited, inviter *domain.Coin) (*domain.Invite, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the redeemer's invite row; concurrent redemptions for the same
	// user serialize here.
	const lockQuery = `SELECT ` + inviteColumns + ` FROM invites WHERE user_id=$1 FOR UPDATE`
	invite, err := fetchInvite(ctx, tx, lockQuery, redeemerUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInviteNotReady
		}
		return nil, err
	}
	if invite.Redeemed() {
		return nil, domain.ErrAlreadyInvited
	}

	const updateQuery = `
        UPDATE invites SET inviter_id=$1, redeemed_code=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING inviter_id, redeemed_code, updated_at`
	if err := tx.QueryRow(ctx, updateQuery, ownerUserID, code, invite.ID).Scan(
		&invite.InviterID,
		&invite.RedeemedCode,
		&invite.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := insertCoin(ctx, tx, invited); err != nil {
		return nil, err
	}
	if err := insertCoin(ctx, tx, inviter); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return invite, nil
}
