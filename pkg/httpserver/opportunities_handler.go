package httpserver

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// OpportunitiesHandler serves the most recent batch result.
type OpportunitiesHandler struct {
	results ResultSource
	logger  *zap.Logger
}

// NewOpportunitiesHandler creates a new opportunities handler.
func NewOpportunitiesHandler(results ResultSource, logger *zap.Logger) *OpportunitiesHandler {
	return &OpportunitiesHandler{
		results: results,
		logger:  logger,
	}
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleOpportunities handles GET /api/opportunities requests. The
// optional kind query parameter restricts the response to "ev" or
// "arbitrage".
func (h *OpportunitiesHandler) HandleOpportunities(w http.ResponseWriter, r *http.Request) {
	result := h.results.Latest()
	if result == nil {
		h.writeError(w, "no batch analyzed yet", http.StatusNotFound)
		return
	}

	var payload any = result
	switch r.URL.Query().Get("kind") {
	case "":
	case "ev":
		payload = result.EV
	case "arbitrage":
		payload = result.Arbitrage
	default:
		h.writeError(w, "kind must be 'ev' or 'arbitrage'", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		h.logger.Warn("opportunities-encode-failed", zap.Error(err))
	}
}

func (h *OpportunitiesHandler) writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
