// Package analyzer turns an ingredient list into a ProductAnalysis. A Selector
// tries the AI analyzer first and falls back to the local scoring engine on
// any failure, so callers always receive a valid analysis.
package analyzer

import (
	"context"
	"errors"

	"grocery-detective/internal/model"
)

// Analyzer produces a structured analysis for an ingredient list and a
// preference profile.
type Analyzer interface {
	Analyze(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error)
}

var (
	// ErrAnalyzerUnavailable is returned when no AI provider is configured or reachable.
	ErrAnalyzerUnavailable = errors.New("analyzer unavailable")
	// ErrInvalidResponse is returned when the AI reply does not match the analysis contract.
	ErrInvalidResponse = errors.New("invalid analyzer response")
)

type unavailable struct{}

// Unavailable returns an analyzer that always fails with ErrAnalyzerUnavailable.
func Unavailable() Analyzer {
	return unavailable{}
}

func (unavailable) Analyze(context.Context, string, model.UserPreferences) (*model.ProductAnalysis, error) {
	return nil, ErrAnalyzerUnavailable
}
