package handler

import (
	"net/http"

	"grocery-detective/internal/model"
	"grocery-detective/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles premium subscription requests.
type PaymentHandler struct {
	service service.SubscriptionService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.SubscriptionService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateSubscription handles POST /api/payment/create-subscription requests.
func (h *PaymentHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req model.SubscriptionRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	if _, err := h.service.Activate(r.Context(), &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Subscription activated"})
}

// Config handles GET /api/payment/config requests.
func (h *PaymentHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.PaymentConfig())
}
