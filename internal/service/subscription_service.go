package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grocery-detective/internal/model"
	"grocery-detective/internal/quota"
	"grocery-detective/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// subscriptionService implements SubscriptionService.
type subscriptionService struct {
	userRepo      repository.UserRepository
	subRepo       repository.SubscriptionRepository
	tracker       *quota.Tracker
	premiumPeriod time.Duration
	payment       model.PaymentConfig
	now           func() time.Time
	logger        zerolog.Logger
}

// NewSubscriptionService creates a new subscription service. The payment
// provider is trusted: payment IDs are recorded as reported by the client.
func NewSubscriptionService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	tracker *quota.Tracker,
	premiumPeriod time.Duration,
	payment model.PaymentConfig,
	logger zerolog.Logger,
) SubscriptionService {
	return &subscriptionService{
		userRepo:      userRepo,
		subRepo:       subRepo,
		tracker:       tracker,
		premiumPeriod: premiumPeriod,
		payment:       payment,
		now:           time.Now,
		logger:        logger.With().Str("service", "subscription").Logger(),
	}
}

// Activate marks the user premium and records the subscription.
func (s *subscriptionService) Activate(ctx context.Context, req *model.SubscriptionRequest) (sub *model.Subscription, err error) {
	if req == nil || strings.TrimSpace(req.PaymentID) == "" || strings.TrimSpace(req.PlanType) == "" {
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

	state := s.tracker.Activate(user.QuotaState)

	tx, err := s.userRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	found, err := s.userRepo.SetPremium(ctx, tx, userID, state.IsPremium)
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}
	if !found {
		s.logger.Debug().Str("user_id", req.UserID).Msg("user deleted during activation")
		err = model.ErrUserNotFound
		return nil, err
	}

	now := s.now().UTC()
	sub = &model.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		PaymentID: strings.TrimSpace(req.PaymentID),
		PlanType:  strings.TrimSpace(req.PlanType),
		Status:    model.SubscriptionStatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(s.premiumPeriod),
	}

	if err = s.subRepo.Create(ctx, tx, sub); err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create subscription")
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	s.logger.Info().
		Str("user_id", req.UserID).
		Str("plan_type", sub.PlanType).
		Time("expires_at", sub.ExpiresAt).
		Msg("subscription activated")

	return sub, nil
}

// PaymentConfig returns the client-side payment configuration.
func (s *subscriptionService) PaymentConfig() model.PaymentConfig {
	return s.payment
}
