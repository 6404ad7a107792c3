package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"grocery-detective/internal/handler"
	"grocery-detective/internal/middleware"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const testAPIKey = "router-test-key"

func newTestRouter() http.Handler {
	logger := zerolog.Nop()
	return New(Handlers{
		User:     handler.NewUserHandler(nil, logger),
		Analysis: handler.NewAnalysisHandler(nil, logger),
		Payment:  handler.NewPaymentHandler(nil, logger),
	}, testAPIKey, middleware.NewRateLimiter(100, 100), logger)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Health without API key",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"healthy"}`,
		},
		{
			name:           "API root",
			method:         http.MethodGet,
			path:           "/api",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Grocery Detective API","version":"1.0.0"}`,
		},
		{
			name:           "API root requires key",
			method:         http.MethodGet,
			path:           "/api",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown route",
			method:         http.MethodGet,
			path:           "/api/unknown",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Wrong method",
			method:         http.MethodGet,
			path:           "/api/analyze-ingredients",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "Invalid body rejected before the service",
			method:         http.MethodPost,
			path:           "/api/analyze-ingredients",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusBadRequest,
		},
	}

	router := newTestRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
