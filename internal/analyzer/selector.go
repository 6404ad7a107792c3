package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"grocery-detective/internal/model"
)

const defaultTimeout = 30 * time.Second

// Selector tries the primary analyzer and falls back to the secondary one on
// any failure, panic or timeout. The primary's errors are logged, never returned.
type Selector struct {
	primary  Analyzer
	fallback Analyzer
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewSelector creates a selector. A non-positive timeout uses the 30s default.
func NewSelector(primary, fallback Analyzer, timeout time.Duration, logger zerolog.Logger) *Selector {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Selector{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		logger:   logger.With().Str("component", "analysis-selector").Logger(),
	}
}

// Analyze implements Analyzer.
func (s *Selector) Analyze(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error) {
	analysis, _, err := s.AnalyzeWithSource(ctx, ingredientsText, prefs)
	return analysis, err
}

// AnalyzeWithSource is like Analyze but also reports which analyzer produced the result.
func (s *Selector) AnalyzeWithSource(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, model.AnalysisSource, error) {
	start := time.Now()

	analysis, err := s.tryPrimary(ctx, ingredientsText, prefs)
	if err == nil {
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("analysis served by AI analyzer")
		return analysis, model.SourceAI, nil
	}

	s.logger.Warn().
		Err(err).
		Dur("duration", time.Since(start)).
		Msg("AI analysis failed, using fallback analyzer")

	analysis, err = s.fallback.Analyze(ctx, ingredientsText, prefs)
	if err != nil {
		return nil, model.SourceFallback, fmt.Errorf("fallback analysis failed: %w", err)
	}
	return analysis, model.SourceFallback, nil
}

type primaryResult struct {
	analysis *model.ProductAnalysis
	err      error
}

// tryPrimary runs the primary analyzer on its own goroutine and abandons it
// once the selector timeout passes.
func (s *Selector) tryPrimary(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan primaryResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- primaryResult{err: fmt.Errorf("analyzer panic: %v", r)}
			}
		}()
		analysis, err := s.primary.Analyze(ctx, ingredientsText, prefs)
		done <- primaryResult{analysis: analysis, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if res.analysis == nil {
			return nil, fmt.Errorf("%w: empty analysis", ErrInvalidResponse)
		}
		return res.analysis, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrAnalyzerUnavailable, ctx.Err())
	}
}
