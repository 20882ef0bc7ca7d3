package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/five82/pokedex/internal/catalog"
)

// Response helpers

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

type listResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []catalog.Entry `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListPokemon serves the filtered catalog. A failed catalog load is
// served as an empty list; the failure itself is only in the log.
func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.Catalog.Phase() == catalog.PhaseIdle || snap.Loading() {
		respondError(w, s.logger, http.StatusServiceUnavailable, "catalog_loading", "catalog is still loading")
		return
	}

	query := r.URL.Query().Get("q")
	results := catalog.Filter(snap.Entries(), query)
	respondJSON(w, s.logger, http.StatusOK, listResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondError(w, s.logger, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	d, err := s.details.LoadDetail(r.Context(), id)
	if err != nil {
		s.logger.Error("detail fetch failed",
			"id", id,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondError(w, s.logger, http.StatusBadGateway, "upstream_error", "failed to fetch pokemon from upstream")
		return
	}

	respondJSON(w, s.logger, http.StatusOK, d)
}
