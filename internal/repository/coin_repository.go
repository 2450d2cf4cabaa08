package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iludo/profile-service/internal/domain"
)

// CoinRepository persists the append-only reward ledger. There is no
// update or delete: corrections are new entries.
type CoinRepository interface {
	Credit(ctx context.Context, coin *domain.Coin) error
	SumByUser(ctx context.Context, userID string) (*int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Coin, error)
}

type coinRepository struct {
	pool *pgxpool.Pool
}

// NewCoinRepository returns a Postgres-backed implementation.
func NewCoinRepository(pool *pgxpool.Pool) CoinRepository {
	return &coinRepository{pool: pool}
}

func (r *coinRepository) Credit(ctx context.Context, coin *domain.Coin) error {
	return insertCoin(ctx, r.pool, coin)
}

// insertCoin appends one ledger entry. Shared with the invite repository's
// transactional redemption path.
func insertCoin(ctx context.Context, db DB, coin *domain.Coin) error {
	const query = `
        INSERT INTO coins (user_id, type, value, data)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return db.QueryRow(ctx, query,
		coin.UserID,
		coin.Type,
		coin.Value,
		coin.Data,
	).Scan(&coin.ID, &coin.CreatedAt)
}

// SumByUser folds the ledger for one user. The result is nil, not zero,
// when the user has no entries at all.
func (r *coinRepository) SumByUser(ctx context.Context, userID string) (*int64, error) {
	const query = `SELECT SUM(value) FROM coins WHERE user_id=$1`
	var sum *int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return nil, err
	}
	return sum, nil
}

func (r *coinRepository) ListByUser(ctx context.Context, userID string) ([]domain.Coin, error) {
	const query = `
        SELECT id, user_id, type, value, data, created_at
        FROM coins WHERE user_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Coin
	for rows.Next() {
		var coin domain.Coin
		if err := rows.Scan(
			&coin.ID,
			&coin.UserID,
			&coin.Type,
			&coin.Value,
			&coin.Data,
			&coin.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, coin)
	}
	return result, rows.Err()
}
