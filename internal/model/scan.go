package model

import (
	"time"

	"github.com/google/uuid"
)

// Scan is a persisted ingredient analysis.
type Scan struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	IngredientsText string          `json:"ingredients_text" db:"ingredients_text"`
	Analysis        ProductAnalysis `json:"analysis" db:"analysis"`
	Source          AnalysisSource  `json:"source" db:"source"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
