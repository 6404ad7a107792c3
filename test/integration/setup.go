package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"grocery-detective/internal/analyzer"
	"grocery-detective/internal/database/dbtest"
	"grocery-detective/internal/handler"
	"grocery-detective/internal/middleware"
	"grocery-detective/internal/model"
	"grocery-detective/internal/quota"
	"grocery-detective/internal/reference"
	"grocery-detective/internal/repository"
	"grocery-detective/internal/router"
	"grocery-detective/internal/scoring"
	"grocery-detective/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TestAPIKey is accepted by servers built with SetupTestServer.
const TestAPIKey = "test-api-key"

// TestServer is the full HTTP stack over a containerised database.
type TestServer struct {
	DB      *dbtest.DB
	Handler http.Handler
	Clock   *Clock
}

// Clock is an adjustable time source for the quota tracker.
type Clock struct {
	now time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// SetupTestServer wires repositories, services and handlers the way cmd/api
// does. A nil primary disables the AI analyzer.
func SetupTestServer(t *testing.T, primary analyzer.Analyzer) *TestServer {
	t.Helper()

	db := dbtest.Setup(t)
	logger := zerolog.Nop()

	if primary == nil {
		primary = analyzer.Unavailable()
	}

	clock := &Clock{now: time.Now().UTC()}

	userRepo := repository.NewUserRepository(db.Pool, logger)
	scanRepo := repository.NewScanRepository(db.Pool, logger)
	subRepo := repository.NewSubscriptionRepository(db.Pool, logger)

	fallback := analyzer.NewLocalAnalyzer(scoring.NewEngine(reference.DefaultTable()))
	selector := analyzer.NewSelector(primary, fallback, 2*time.Second, logger)
	tracker := quota.NewTracker(quota.DefaultDailyLimit, clock.Now)

	userService := service.NewUserService(userRepo, scanRepo, logger)
	scanService := service.NewScanService(userRepo, scanRepo, selector, tracker, logger)
	subscriptionService := service.NewSubscriptionService(userRepo, subRepo, tracker, 30*24*time.Hour,
		model.PaymentConfig{ClientID: "test-client", Currency: "USD"}, logger)

	h := router.New(router.Handlers{
		User:     handler.NewUserHandler(userService, logger),
		Analysis: handler.NewAnalysisHandler(scanService, logger),
		Payment:  handler.NewPaymentHandler(subscriptionService, logger),
	}, TestAPIKey, middleware.NewRateLimiter(1000, 1000), logger)

	return &TestServer{DB: db, Handler: h, Clock: clock}
}

// SeedUser inserts a user directly and returns its ID.
func SeedUser(t *testing.T, db *dbtest.DB, email string, allergens ...string) uuid.UUID {
	t.Helper()

	repo := repository.NewUserRepository(db.Pool, zerolog.Nop())
	now := time.Now().UTC()
	user := &model.User{
		ID:          uuid.New(),
		Email:       email,
		Name:        "Seeded " + email,
		Preferences: model.UserPreferences{Allergens: allergens}.Normalized(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user.ID
}

// CountScans returns the number of stored scans for a user.
func CountScans(t *testing.T, db *dbtest.DB, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM scans WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count scans: %v", err)
	}
	return count
}

// SourceOfLatestScan returns the analyzer source recorded for the newest scan.
func SourceOfLatestScan(t *testing.T, db *dbtest.DB, userID uuid.UUID) model.AnalysisSource {
	t.Helper()

	var source string
	err := db.Pool.QueryRow(context.Background(),
		"SELECT source FROM scans WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1", userID).Scan(&source)
	if err != nil {
		t.Fatalf("failed to read scan source: %v", err)
	}
	return model.AnalysisSource(source)
}
