package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery-detective/internal/model"
	"grocery-detective/internal/quota"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const premiumPeriod = 30 * 24 * time.Hour

func newSubscriptionService(userRepo *MockUserRepository, subRepo *MockSubscriptionRepository, now time.Time) SubscriptionService {
	tracker := quota.NewTracker(quota.DefaultDailyLimit, func() time.Time { return now })
	svc := NewSubscriptionService(userRepo, subRepo, tracker, premiumPeriod,
		model.PaymentConfig{ClientID: "paypal-client", Currency: "USD"}, zerolog.Nop())
	svc.(*subscriptionService).now = func() time.Time { return now }
	return svc
}

func TestSubscriptionService_Activate_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mockUserRepo := new(MockUserRepository)
	mockSubRepo := new(MockSubscriptionRepository)
	mockTx := new(MockTx)
	service := newSubscriptionService(mockUserRepo, mockSubRepo, now)

	lastScan := now.Add(-time.Hour)
	mockUserRepo.On("GetByID", ctx, userID).Return(&model.User{
		ID:         userID,
		QuotaState: model.QuotaState{ScansToday: 5, LastScanDate: &lastScan},
	}, nil)
	mockUserRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockUserRepo.On("SetPremium", ctx, mockTx, userID, true).Return(true, nil)
	mockSubRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Subscription")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-123",
		PlanType:  "monthly",
	})

	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, userID, sub.UserID)
	assert.Equal(t, "PAY-123", sub.PaymentID)
	assert.Equal(t, "monthly", sub.PlanType)
	assert.Equal(t, model.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, now, sub.CreatedAt)
	assert.Equal(t, now.Add(premiumPeriod), sub.ExpiresAt)

	mockUserRepo.AssertExpectations(t)
	mockSubRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestSubscriptionService_Activate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockSubRepo := new(MockSubscriptionRepository)
	service := newSubscriptionService(mockUserRepo, mockSubRepo, time.Now())

	mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil)

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-123",
		PlanType:  "monthly",
	})

	assert.Equal(t, model.ErrUserNotFound, err)
	assert.Nil(t, sub)
	mockUserRepo.AssertNotCalled(t, "BeginTx", ctx)
	mockSubRepo.AssertNotCalled(t, "Create")
}

func TestSubscriptionService_Activate_UserDeletedBeforeUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockSubRepo := new(MockSubscriptionRepository)
	mockTx := new(MockTx)
	service := newSubscriptionService(mockUserRepo, mockSubRepo, time.Now())

	mockUserRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)
	mockUserRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockUserRepo.On("SetPremium", ctx, mockTx, userID, true).Return(false, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-123",
		PlanType:  "monthly",
	})

	assert.Equal(t, model.ErrUserNotFound, err)
	assert.Nil(t, sub)
	mockSubRepo.AssertNotCalled(t, "Create")
	mockTx.AssertExpectations(t)
}

func TestSubscriptionService_Activate_AlreadyPremium(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockSubRepo := new(MockSubscriptionRepository)
	mockTx := new(MockTx)
	service := newSubscriptionService(mockUserRepo, mockSubRepo, time.Now())

	mockUserRepo.On("GetByID", ctx, userID).Return(&model.User{
		ID:         userID,
		QuotaState: model.QuotaState{IsPremium: true},
	}, nil)
	mockUserRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockUserRepo.On("SetPremium", ctx, mockTx, userID, true).Return(true, nil)
	mockSubRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Subscription")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-456",
		PlanType:  "yearly",
	})

	require.NoError(t, err)
	assert.Equal(t, "yearly", sub.PlanType)
	mockUserRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestSubscriptionService_Activate_LookupFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	service := newSubscriptionService(mockUserRepo, new(MockSubscriptionRepository), time.Now())

	mockUserRepo.On("GetByID", ctx, userID).Return(nil, errors.New("connection refused"))

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-123",
		PlanType:  "monthly",
	})

	require.Error(t, err)
	assert.Nil(t, sub)
	mockUserRepo.AssertNotCalled(t, "BeginTx", ctx)
}

func TestSubscriptionService_Activate_RollbackOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockUserRepo := new(MockUserRepository)
	mockSubRepo := new(MockSubscriptionRepository)
	mockTx := new(MockTx)
	service := newSubscriptionService(mockUserRepo, mockSubRepo, time.Now())

	mockUserRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)
	mockUserRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockUserRepo.On("SetPremium", ctx, mockTx, userID, true).Return(true, nil)
	mockSubRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Subscription")).
		Return(errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	sub, err := service.Activate(ctx, &model.SubscriptionRequest{
		UserID:    userID.String(),
		PaymentID: "PAY-123",
		PlanType:  "monthly",
	})

	require.Error(t, err)
	assert.Nil(t, sub)
	mockTx.AssertExpectations(t)
	mockTx.AssertNotCalled(t, "Commit", ctx)
}

func TestSubscriptionService_Activate_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	mockUserRepo := new(MockUserRepository)
	service := newSubscriptionService(mockUserRepo, new(MockSubscriptionRepository), time.Now())

	tests := []struct {
		name        string
		req         *model.SubscriptionRequest
		expectedErr error
	}{
		{name: "Nil request", req: nil, expectedErr: model.ErrInvalidRequest},
		{
			name:        "Missing payment ID",
			req:         &model.SubscriptionRequest{UserID: uuid.NewString(), PlanType: "monthly"},
			expectedErr: model.ErrInvalidRequest,
		},
		{
			name:        "Missing plan",
			req:         &model.SubscriptionRequest{UserID: uuid.NewString(), PaymentID: "PAY-1"},
			expectedErr: model.ErrInvalidRequest,
		},
		{
			name:        "Malformed user ID",
			req:         &model.SubscriptionRequest{UserID: "x", PaymentID: "PAY-1", PlanType: "monthly"},
			expectedErr: model.ErrInvalidUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := service.Activate(ctx, tt.req)

			assert.Equal(t, tt.expectedErr, err)
			assert.Nil(t, sub)
		})
	}

	mockUserRepo.AssertNotCalled(t, "BeginTx")
}

func TestSubscriptionService_PaymentConfig(t *testing.T) {
	service := newSubscriptionService(new(MockUserRepository), new(MockSubscriptionRepository), time.Now())

	assert.Equal(t, model.PaymentConfig{ClientID: "paypal-client", Currency: "USD"}, service.PaymentConfig())
}
