package repository

import (
	"context"
	"fmt"

	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// subscriptionRepository implements the SubscriptionRepository interface using PostgreSQL.
type subscriptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubscriptionRepository creates a new PostgreSQL-backed subscription repository.
func NewSubscriptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "subscription").Logger(),
	}
}

// Create inserts a subscription within the provided transaction.
func (r *subscriptionRepository) Create(ctx context.Context, tx pgx.Tx, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, payment_id, plan_type, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		sub.ID,
		sub.UserID,
		sub.PaymentID,
		sub.PlanType,
		sub.Status,
		sub.CreatedAt,
		sub.ExpiresAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", sub.UserID.String()).
			Str("payment_id", sub.PaymentID).
			Msg("failed to create subscription")
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// ListByUser returns all subscriptions of a user, newest first.
func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Subscription, error) {
	query := `
		SELECT id, user_id, payment_id, plan_type, status, created_at, expires_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query subscriptions")
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	subs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Subscription])
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to collect subscription rows")
		return nil, fmt.Errorf("failed to collect subscriptions: %w", err)
	}

	return subs, nil
}
