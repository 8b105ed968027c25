package api

import (
	"net/http"

	"eclat/internal/metrics"
)

// handleServices returns the active services.
// GET /api/v1/services
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("services")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.ListServices(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list services")
		writeError(w, http.StatusInternalServerError, "failed to load services")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

// handleFormations returns the active formations.
// GET /api/v1/formations
func (s *Server) handleFormations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("formations")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	formations, err := s.catalog.ListFormations(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list formations")
		writeError(w, http.StatusInternalServerError, "failed to load formations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"formations": formations})
}
