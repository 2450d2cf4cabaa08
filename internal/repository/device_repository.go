package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iludo/profile-service/internal/domain"
)

// DeviceRepository persists push-notification device tokens.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	GetByToken(ctx context.Context, token string) (*domain.Device, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Device, error)
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository returns a Postgres-backed implementation.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	const query = `
        INSERT INTO devices (user_id, token, client, platform)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		device.UserID,
		device.Token,
		device.Client,
		device.Platform,
	).Scan(&device.ID, &device.CreatedAt)
}

func (r *deviceRepository) GetByToken(ctx context.Context, token string) (*domain.Device, error) {
	const query = `
        SELECT id, user_id, token, client, platform, created_at
        FROM devices WHERE token=$1`
	var device domain.Device
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&device.ID,
		&device.UserID,
		&device.Token,
		&device.Client,
		&device.Platform,
		&device.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) ListByUser(ctx context.Context, userID string) ([]domain.Device, error) {
	const query = `
        SELECT id, user_id, token, client, platform, created_at
        FROM devices WHERE user_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Device
	for rows.Next() {
		var device domain.Device
		if err := rows.Scan(
			&device.ID,
			&device.UserID,
			&device.Token,
			&device.Client,
			&device.Platform,
			&device.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, device)
	}
	return result, rows.Err()
}
