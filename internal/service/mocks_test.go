package service

import (
	"context"

	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.UserPreferences) (bool, error) {
	args := m.Called(ctx, id, prefs)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SaveQuota(ctx context.Context, id uuid.UUID, state model.QuotaState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementScans(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetPremium(ctx context.Context, tx pgx.Tx, id uuid.UUID, premium bool) (bool, error) {
	args := m.Called(ctx, tx, id, premium)
	return args.Bool(0), args.Error(1)
}

// MockScanRepository is a mock implementation of ScanRepository.
type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) Create(ctx context.Context, tx pgx.Tx, scan *model.Scan) error {
	args := m.Called(ctx, tx, scan)
	return args.Error(0)
}

func (m *MockScanRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Scan, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Scan), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, tx pgx.Tx, sub *model.Subscription) error {
	args := m.Called(ctx, tx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

// MockIngredientAnalyzer is a mock implementation of IngredientAnalyzer.
type MockIngredientAnalyzer struct {
	mock.Mock
}

func (m *MockIngredientAnalyzer) AnalyzeWithSource(ctx context.Context, text string, prefs model.UserPreferences) (*model.ProductAnalysis, model.AnalysisSource, error) {
	args := m.Called(ctx, text, prefs)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.AnalysisSource), args.Error(2)
	}
	return args.Get(0).(*model.ProductAnalysis), args.Get(1).(model.AnalysisSource), args.Error(2)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
