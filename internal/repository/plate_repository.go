package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iludo/profile-service/internal/domain"
)

// PlateRepository persists plate registrations and owns the transactional
// register workflow.
type PlateRepository interface {
	GetActiveByUser(ctx context.Context, userID string) (*domain.Plate, error)
	// RegisterAtomic checks value uniqueness among active plates,
	// deactivates the caller's prior plates, and inserts the new active
	// row in one transaction. A losing racer fails with
	// domain.ErrPlateTaken; the partial unique index backstops the check.
	RegisterAtomic(ctx context.Context, plate *domain.Plate) error
	DeleteActive(ctx context.Context, userID string) (bool, error)
}

type plateRepository struct {
	pool *pgxpool.Pool
}

// NewPlateRepository returns a Postgres-backed implementation.
func NewPlateRepository(pool *pgxpool.Pool) PlateRepository {
	return &plateRepository{pool: pool}
}

const plateColumns = `id, user_id, value, expiry, temporary, country, inactive, created_at`

func (r *plateRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Plate, error) {
	const query = `
        SELECT ` + plateColumns + `
        FROM plates WHERE user_id=$1 AND inactive IS NULL
        ORDER BY created_at DESC
        LIMIT 1`
	var plate domain.Plate
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&plate.ID,
		&plate.UserID,
		&plate.Value,
		&plate.Expiry,
		&plate.Temporary,
		&plate.Country,
		&plate.Inactive,
		&plate.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &plate, nil
}

func (r *plateRepository) RegisterAtomic(ctx context.Context, plate *domain.Plate) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock any active row holding this value. Another user owning it is a
	// conflict; the caller re-registering their own value rotates it below.
	const conflictQuery = `
        SELECT user_id FROM plates
        WHERE value=$1 AND inactive IS NULL
        FOR UPDATE`
	var holderID string
	err = tx.QueryRow(ctx, conflictQuery, plate.Value).Scan(&holderID)
	switch {
	case err == nil:
		if holderID != plate.UserID {
			return domain.ErrPlateTaken
		}
	case errors.Is(err, pgx.ErrNoRows):
		// value free
	default:
		return err
	}

	const deactivateQuery = `
        UPDATE plates SET inactive=TRUE
        WHERE user_id=$1 AND inactive IS NULL`
	if _, err := tx.Exec(ctx, deactivateQuery, plate.UserID); err != nil {
		return err
	}

	const insertQuery = `
        INSERT INTO plates (user_id, value, expiry, temporary, country)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertQuery,
		plate.UserID,
		plate.Value,
		plate.Expiry,
		plate.Temporary,
		plate.Country,
	).Scan(&plate.ID, &plate.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPlateTaken
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *plateRepository) DeleteActive(ctx context.Context, userID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM plates WHERE user_id=$1 AND inactive IS NULL`, userID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, pgx.ErrNoRows
	}
	return true, nil
}
