// internal/server/handlers/search.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"brandpulse/internal/domain/social"
	"brandpulse/internal/service/listening"
)

// SearchHandler handles brand-search HTTP requests
type SearchHandler struct {
	searcher social.Searcher
	logger   logrus.FieldLogger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher social.Searcher, logger logrus.FieldLogger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// Search runs a brand search and returns the metrics and insights
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")
	if brand == "" {
		respondWithError(w, http.StatusBadRequest, "Missing brand name")
		return
	}

	result, err := h.searcher.Search(r.Context(), brand)
	if err != nil {
		if errors.Is(err, listening.ErrNoData) {
			respondWithError(w, http.StatusNotFound, "No data found for the specified brand")
			return
		}
		h.logger.WithField("brand", brand).WithError(err).Error("Error processing brand search")
		respondWithError(w, http.StatusInternalServerError, "Failed to process brand search")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Health responds to health checks
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
