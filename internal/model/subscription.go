package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatusActive is the status recorded for a freshly purchased subscription.
const SubscriptionStatusActive = "active"

// Subscription records a premium purchase reported by the payment provider.
type Subscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	PaymentID string    `json:"payment_id" db:"payment_id"`
	PlanType  string    `json:"plan_type" db:"plan_type"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// SubscriptionRequest represents the request payload for activating premium.
type SubscriptionRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	PlanType  string `json:"plan_type" validate:"required"`
}

// PaymentConfig is the client-side payment configuration.
type PaymentConfig struct {
	ClientID string `json:"client_id"`
	Currency string `json:"currency"`
}
