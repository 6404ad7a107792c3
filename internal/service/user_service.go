package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"grocery-detective/internal/model"
	"grocery-detective/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	scanRepo repository.ScanRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, scanRepo repository.ScanRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		scanRepo: scanRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Create registers a new user with an empty scan counter.
func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, model.ErrInvalidRequest
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		s.logger.Warn().Msg("email or name is empty")
		return nil, model.ErrInvalidRequest
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:          uuid.New(),
		Email:       email,
		Name:        name,
		Preferences: req.Preferences.Normalized(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user created successfully")

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		s.logger.Debug().Str("user_id", id).Msg("invalid user ID")
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		s.logger.Debug().Str("user_id", id).Msg("user not found")
		return nil, model.ErrUserNotFound
	}

	return user, nil
}

// UpdatePreferences replaces the user's preference profile.
func (s *userService) UpdatePreferences(ctx context.Context, req *model.UpdatePreferencesRequest) error {
	if req == nil {
		return model.ErrInvalidRequest
	}

	userID, err := parseUserID(req.UserID)
	if err != nil {
		return err
	}

	found, err := s.userRepo.UpdatePreferences(ctx, userID, req.Preferences())
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	if !found {
		s.logger.Debug().Str("user_id", req.UserID).Msg("user not found")
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", req.UserID).Msg("preferences updated")

	return nil
}

// ScanHistory returns the user's most recent scans, newest first.
func (s *userService) ScanHistory(ctx context.Context, id string, limit int) ([]model.Scan, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scans, err := s.scanRepo.ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}

	s.logger.Debug().
		Str("user_id", id).
		Int("count", len(scans)).
		Int("limit", limit).
		Msg("retrieved scan history")

	return scans, nil
}

func parseUserID(id string) (uuid.UUID, error) {
	userID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, model.ErrInvalidUserID
	}
	return userID, nil
}
