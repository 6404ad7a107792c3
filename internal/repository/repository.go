package repository

import (
	"context"

	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new user. Returns model.ErrEmailTaken if the email is in use.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil, nil when the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// UpdatePreferences replaces the preference profile. Reports whether the user exists.
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.UserPreferences) (bool, error)

	// SaveQuota stores the scan counter and last scan date.
	SaveQuota(ctx context.Context, id uuid.UUID, state model.QuotaState) error

	// IncrementScans adds one to today's scan counter within the provided transaction
	// and returns the new count.
	IncrementScans(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error)

	// SetPremium stores the premium flag within the provided transaction.
	// Reports whether the user exists.
	SetPremium(ctx context.Context, tx pgx.Tx, id uuid.UUID, premium bool) (bool, error)
}

// ScanRepository defines the interface for scan history data access operations.
type ScanRepository interface {
	// Create inserts a scan within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, scan *model.Scan) error

	// ListByUser returns the most recent scans of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Scan, error)
}

// SubscriptionRepository defines the interface for subscription data access operations.
type SubscriptionRepository interface {
	// Create inserts a subscription within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, sub *model.Subscription) error

	// ListByUser returns all subscriptions of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Subscription, error)
}
