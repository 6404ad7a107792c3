package router

import (
	"net/http"

	"grocery-detective/internal/handler"
	"grocery-detective/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// APIVersion is reported by the API root endpoint.
const APIVersion = "1.0.0"

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	User     *handler.UserHandler
	Analysis *handler.AnalysisHandler
	Payment  *handler.PaymentHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, limiter *middleware.RateLimiter, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> Logging -> CORS -> APIKeyAuth -> RateLimit
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RateLimit(limiter, logger))

		api.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"message":"Grocery Detective API","version":"` + APIVersion + `"}`))
		})

		api.Route("/users", func(users chi.Router) {
			users.Post("/", h.User.Create)
			users.Post("/preferences", h.User.UpdatePreferences)
			users.Get("/{id}", h.User.GetByID)
			users.Get("/{id}/scans", h.User.ScanHistory)
		})

		api.Post("/analyze-ingredients", h.Analysis.Analyze)

		api.Route("/payment", func(payment chi.Router) {
			payment.Post("/create-subscription", h.Payment.CreateSubscription)
			payment.Get("/config", h.Payment.Config)
		})
	})

	return r
}
