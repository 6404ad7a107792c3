package repository

import (
	"context"
	"errors"
	"fmt"

	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *userRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, name, preferences, scans_today, last_scan_date, is_premium, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Preferences.Normalized(),
		user.ScansToday,
		user.LastScanDate,
		user.IsPremium,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("email", user.Email).Msg("email already registered")
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Str("user_id", user.ID.String()).Msg("user created successfully")

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, email, name, preferences, scans_today, last_scan_date, is_premium, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Preferences,
		&user.ScansToday,
		&user.LastScanDate,
		&user.IsPremium,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.Preferences = user.Preferences.Normalized()
	return &user, nil
}

// UpdatePreferences replaces the preference profile of a user.
func (r *userRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.UserPreferences) (bool, error) {
	query := `
		UPDATE users
		SET preferences = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, prefs.Normalized())
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update preferences")
		return false, fmt.Errorf("failed to update preferences: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// SaveQuota stores the scan counter and last scan date of a user.
func (r *userRepository) SaveQuota(ctx context.Context, id uuid.UUID, state model.QuotaState) error {
	query := `
		UPDATE users
		SET scans_today = $2, last_scan_date = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, id, state.ScansToday, state.LastScanDate); err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to save quota")
		return fmt.Errorf("failed to save quota: %w", err)
	}

	return nil
}

// IncrementScans adds one to the scan counter and returns the new value. The
// increment happens in SQL so concurrent scans by the same user are not lost.
func (r *userRepository) IncrementScans(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	query := `
		UPDATE users
		SET scans_today = scans_today + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING scans_today
	`

	var count int
	if err := tx.QueryRow(ctx, query, id).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to increment scans")
		return 0, fmt.Errorf("failed to increment scans: %w", err)
	}

	return count, nil
}

// SetPremium stores the premium flag of a user.
func (r *userRepository) SetPremium(ctx context.Context, tx pgx.Tx, id uuid.UUID, premium bool) (bool, error) {
	query := `
		UPDATE users
		SET is_premium = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, premium)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to set premium")
		return false, fmt.Errorf("failed to set premium: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
