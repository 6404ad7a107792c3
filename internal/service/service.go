package service

import (
	"context"

	"grocery-detective/internal/model"
)

// UserService defines operations for user accounts and their dietary profile.
type UserService interface {
	// Create registers a new user. Returns model.ErrEmailTaken for a duplicate email.
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdatePreferences replaces the user's preference profile.
	UpdatePreferences(ctx context.Context, req *model.UpdatePreferencesRequest) error

	// ScanHistory returns the user's most recent scans, newest first.
	ScanHistory(ctx context.Context, id string, limit int) ([]model.Scan, error)
}

// ScanService defines the ingredient scan workflow.
type ScanService interface {
	// AnalyzeIngredients admits the scan against the user's quota, analyzes the
	// text and records the result.
	AnalyzeIngredients(ctx context.Context, req *model.AnalyzeIngredientsRequest) (*model.ProductAnalysis, error)
}

// SubscriptionService defines premium activation operations.
type SubscriptionService interface {
	// Activate grants premium to a user and records the subscription.
	Activate(ctx context.Context, req *model.SubscriptionRequest) (*model.Subscription, error)

	// PaymentConfig returns the client-side payment configuration.
	PaymentConfig() model.PaymentConfig
}

// IngredientAnalyzer produces an analysis and reports which analyzer served it.
type IngredientAnalyzer interface {
	AnalyzeWithSource(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, model.AnalysisSource, error)
}
