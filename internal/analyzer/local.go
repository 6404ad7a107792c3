package analyzer

import (
	"context"

	"grocery-detective/internal/model"
	"grocery-detective/internal/scoring"
)

// LocalAnalyzer adapts the rule-based scoring engine to the Analyzer interface.
// It never returns an error.
type LocalAnalyzer struct {
	engine *scoring.Engine
}

// NewLocalAnalyzer creates an analyzer backed by engine.
func NewLocalAnalyzer(engine *scoring.Engine) *LocalAnalyzer {
	return &LocalAnalyzer{engine: engine}
}

func (a *LocalAnalyzer) Analyze(_ context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error) {
	result := a.engine.Score(ingredientsText, prefs)
	return &result, nil
}
