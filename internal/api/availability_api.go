package api

import (
	"context"
	"net/http"
	"time"

	"eclat/internal/availability"
	"eclat/internal/metrics"
)

// DayAvailability is one calendar day in the month view.
type DayAvailability struct {
	Date     string `json:"date"`
	Bookable bool   `json:"bookable"`
}

// MonthResponse is the response for GET /api/v1/availability.
type MonthResponse struct {
	Month string            `json:"month"`
	Days  []DayAvailability `json:"days"`
}

// SlotsResponse is the response for GET /api/v1/availability/slots.
type SlotsResponse struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	Slots     []string `json:"slots"`
}

// calculator builds an availability calculator anchored at today with the
// current blackout list.
func (s *Server) calculator(ctx context.Context) (*availability.Calculator, error) {
	blackouts, err := s.db.ListBlackoutDates(ctx)
	if err != nil {
		return nil, err
	}
	return availability.NewCalculator(s.now(), blackouts, nil), nil
}

// handleAvailabilityMonth returns day-level availability for a calendar month.
// A day is bookable when it is not closed outright and at least one slot is
// open on it.
// GET /api/v1/availability?month=YYYY-MM
func (s *Server) handleAvailabilityMonth(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_month")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
		return
	}

	calc, err := s.calculator(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load blackout dates")
		writeError(w, http.StatusInternalServerError, "failed to compute availability")
		return
	}

	resp := MonthResponse{Month: monthStr}
	for d := month; d.Month() == month.Month(); d = d.AddDate(0, 0, 1) {
		resp.Days = append(resp.Days, DayAvailability{
			Date:     d.Format("2006-01-02"),
			Bookable: !calc.IsUnavailable(d) && len(calc.OpenSlots(d)) > 0,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleAvailabilitySlots returns the open slots for a single date.
// GET /api/v1/availability/slots?date=YYYY-MM-DD
func (s *Server) handleAvailabilitySlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability_slots")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	calc, err := s.calculator(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load blackout dates")
		writeError(w, http.StatusInternalServerError, "failed to compute availability")
		return
	}

	slots := calc.OpenSlots(date)
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, SlotsResponse{
		Date:      dateStr,
		Available: !calc.IsUnavailable(date),
		Slots:     slots,
	})
}
