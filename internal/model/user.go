package model

import (
	"time"

	"github.com/google/uuid"
)

// UserPreferences holds the dietary profile used to personalise an analysis.
// Matching against it is case-insensitive.
type UserPreferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergens           []string `json:"allergens"`
	HealthGoals         []string `json:"health_goals"`
}

// Normalized returns a copy with nil lists replaced by empty ones so the
// preferences always serialise as JSON arrays.
func (p UserPreferences) Normalized() UserPreferences {
	return UserPreferences{
		DietaryRestrictions: nonNil(p.DietaryRestrictions),
		Allergens:           nonNil(p.Allergens),
		HealthGoals:         nonNil(p.HealthGoals),
	}
}

// QuotaState tracks the free-tier daily scan counter of a user.
type QuotaState struct {
	ScansToday   int        `json:"scans_today" db:"scans_today"`
	LastScanDate *time.Time `json:"last_scan_date" db:"last_scan_date"`
	IsPremium    bool       `json:"is_premium" db:"is_premium"`
}

// User represents an account of the scanner.
type User struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Email       string          `json:"email" db:"email"`
	Name        string          `json:"name" db:"name"`
	Preferences UserPreferences `json:"preferences" db:"preferences"`
	QuotaState
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest represents the request payload for creating a user.
type CreateUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Name        string          `json:"name" validate:"required"`
	Preferences UserPreferences `json:"preferences"`
}

// UpdatePreferencesRequest represents the request payload for replacing a user's preferences.
type UpdatePreferencesRequest struct {
	UserID              string   `json:"user_id" validate:"required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergens           []string `json:"allergens"`
	HealthGoals         []string `json:"health_goals"`
}

// Preferences extracts the preference profile from the request.
func (r *UpdatePreferencesRequest) Preferences() UserPreferences {
	return UserPreferences{
		DietaryRestrictions: r.DietaryRestrictions,
		Allergens:           r.Allergens,
		HealthGoals:         r.HealthGoals,
	}.Normalized()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
