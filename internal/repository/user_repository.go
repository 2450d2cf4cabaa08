package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iludo/profile-service/internal/domain"
)

// UserRepository defines persistence access for user profiles.
type UserRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const profileColumns = `
        u.id, u.email, u.password_hash, u.role, u.first_name, u.last_name,
        u.gender, u.birthday, u.preference, u.created_at, u.updated_at,
        v.verified`

func (r *userRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO users (email, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
        SELECT` + profileColumns + `
        FROM users u
        LEFT JOIN verifications v ON v.user_id = u.id
        WHERE u.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const query = `
        SELECT` + profileColumns + `
        FROM users u
        LEFT JOIN verifications v ON v.user_id = u.id
        WHERE u.email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var (
		profile    domain.Profile
		preference []byte
		verified   *bool
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Role,
		&profile.FirstName,
		&profile.LastName,
		&profile.Gender,
		&profile.Birthday,
		&preference,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&verified,
	); err != nil {
		return nil, err
	}
	if preference != nil {
		var pref domain.Preference
		if err := json.Unmarshal(preference, &pref); err != nil {
			return nil, err
		}
		profile.Preference = &pref
	}
	if verified != nil {
		profile.Verification = &domain.Verification{UserID: profile.ID, Verified: *verified}
	}
	return &profile, nil
}

// UpdateProfile persists the mutable profile fields in a single statement,
// so a validation failure upstream leaves no partial write behind.
func (r *userRepository) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, gender=$3, birthday=$4,
            preference=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	var preference []byte
	if profile.Preference != nil {
		encoded, err := json.Marshal(profile.Preference)
		if err != nil {
			return err
		}
		preference = encoded
	}

	return r.pool.QueryRow(ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.Gender,
		profile.Birthday,
		preference,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, pgx.ErrNoRows
	}
	return true, nil
}
