package api

import (
	"net/http"
	"strconv"

	"eclat/internal/db"
	"eclat/internal/export"
	"eclat/internal/metrics"
)

func (s *Server) checkAdminKey(w http.ResponseWriter, r *http.Request) bool {
	if s.adminKey == "" || r.Header.Get("X-Api-Key") != s.adminKey {
		writeError(w, http.StatusUnauthorized, "invalid or missing API key")
		return false
	}
	return true
}

func reservationFilterFromQuery(r *http.Request) db.ReservationFilter {
	q := r.URL.Query()
	filter := db.ReservationFilter{
		Status:   q.Get("status"),
		Kind:     q.Get("kind"),
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}

// handleAdminReservations lists stored reservations for the back office.
// GET /api/v1/admin/reservations?status=&kind=&from=&to=&limit=&offset=
func (s *Server) handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_reservations")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.checkAdminKey(w, r) {
		return
	}

	reservations, err := s.db.ListReservations(r.Context(), reservationFilterFromQuery(r))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list reservations")
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

// handleAdminExport streams the filtered reservations as an Excel workbook.
// GET /api/v1/admin/reservations/export
func (s *Server) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("admin_export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.checkAdminKey(w, r) {
		return
	}

	reservations, err := s.db.ListReservations(r.Context(), reservationFilterFromQuery(r))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list reservations for export")
		writeError(w, http.StatusInternalServerError, "failed to load reservations")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reservations.xlsx"`)
	if err := export.WriteReservations(w, reservations); err != nil {
		s.log.Error().Err(err).Msg("failed to write reservations workbook")
	}
}
