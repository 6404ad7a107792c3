package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery-detective/internal/model"
	"grocery-detective/internal/quota"
	"grocery-detective/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// scanService implements ScanService.
type scanService struct {
	userRepo repository.UserRepository
	scanRepo repository.ScanRepository
	analyzer IngredientAnalyzer
	tracker  *quota.Tracker
	logger   zerolog.Logger
}

// NewScanService creates a new scan service.
func NewScanService(
	userRepo repository.UserRepository,
	scanRepo repository.ScanRepository,
	analyzer IngredientAnalyzer,
	tracker *quota.Tracker,
	logger zerolog.Logger,
) ScanService {
	return &scanService{
		userRepo: userRepo,
		scanRepo: scanRepo,
		analyzer: analyzer,
		tracker:  tracker,
		logger:   logger.With().Str("service", "scan").Logger(),
	}
}

// AnalyzeIngredients runs a scan for the user. The analysis is returned only
// after the scan and the counter increment have been committed.
func (s *scanService) AnalyzeIngredients(ctx context.Context, req *model.AnalyzeIngredientsRequest) (*model.ProductAnalysis, error) {
	if req == nil {
		return nil, model.ErrInvalidRequest
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("user_id", req.UserID).Msg("user not found")
		return nil, model.ErrUserNotFound
	}

	state, rolled, admitErr := s.tracker.Admit(user.QuotaState)
	if rolled {
		if err := s.userRepo.SaveQuota(ctx, userID, state); err != nil {
			return nil, fmt.Errorf("failed to reset daily quota: %w", err)
		}
	}
	if admitErr != nil {
		s.logger.Info().
			Str("user_id", req.UserID).
			Int("scans_today", state.ScansToday).
			Int("daily_limit", s.tracker.DailyLimit()).
			Msg("daily scan limit reached")
		return nil, admitErr
	}

	analysis, source, err := s.analyzer.AnalyzeWithSource(ctx, req.IngredientsText, user.Preferences.Normalized())
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("analysis failed")
		return nil, fmt.Errorf("failed to analyze ingredients: %w", err)
	}

	count, err := s.record(ctx, userID, req.IngredientsText, analysis, source)
	if err != nil {
		return nil, err
	}

	after := s.tracker.Record(state)
	if count != after.ScansToday {
		s.logger.Warn().
			Str("user_id", req.UserID).
			Int("expected_scans", after.ScansToday).
			Int("scans_today", count).
			Msg("scan counter changed concurrently")
		after.ScansToday = count
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("source", string(source)).
		Int("overall_score", analysis.OverallScore).
		Str("recommendation", string(analysis.Recommendation)).
		Int("scans_remaining", s.tracker.Remaining(after)).
		Msg("ingredients analyzed")

	return analysis, nil
}

// record persists the scan and counts it against today's quota in one
// transaction. It returns the stored scan counter.
func (s *scanService) record(ctx context.Context, userID uuid.UUID, text string, analysis *model.ProductAnalysis, source model.AnalysisSource) (count int, err error) {
	tx, err := s.userRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	scan := &model.Scan{
		ID:              uuid.New(),
		UserID:          userID,
		IngredientsText: text,
		Analysis:        *analysis,
		Source:          source,
		CreatedAt:       time.Now().UTC(),
	}

	if err = s.scanRepo.Create(ctx, tx, scan); err != nil {
		s.logger.Error().Err(err).Str("scan_id", scan.ID.String()).Msg("failed to create scan")
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	count, err = s.userRepo.IncrementScans(ctx, tx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to increment scan counter")
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("scan_id", scan.ID.String()).Msg("failed to commit transaction")
		return 0, fmt.Errorf("failed to record scan: %w", err)
	}

	return count, nil
}
