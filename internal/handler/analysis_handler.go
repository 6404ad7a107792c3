package handler

import (
	"net/http"
	"strings"

	"grocery-detective/internal/model"
	"grocery-detective/internal/service"

	"github.com/rs/zerolog"
)

// AnalysisHandler handles ingredient scan requests.
type AnalysisHandler struct {
	service service.ScanService
	logger  zerolog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(service service.ScanService, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		logger:  logger.With().Str("handler", "analysis").Logger(),
	}
}

// Analyze handles POST /api/analyze-ingredients requests.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeIngredientsRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	if strings.TrimSpace(req.IngredientsText) == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidRequest, "ingredients_text must not be blank", h.logger)
		return
	}

	analysis, err := h.service.AnalyzeIngredients(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
