// Package api is the public HTTP surface of the reservation engine: catalog
// browsing, availability lookups, the per-session reservation flow and the
// admin endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"eclat/internal/catalog"
	"eclat/internal/db"
	"eclat/internal/reservation"
)

// Server serves the reservation API.
type Server struct {
	log      *zerolog.Logger
	catalog  catalog.Provider
	gateway  reservation.SubmissionGateway
	sessions *reservation.SessionStore
	db       *db.DB
	adminKey string
	now      func() time.Time

	server *http.Server
}

// NewServer wires the API server. The database is always local even when the
// catalog and gateway go through the back office; blackout dates and the admin
// reservation views are served from it.
func NewServer(
	port int,
	provider catalog.Provider,
	gw reservation.SubmissionGateway,
	sessions *reservation.SessionStore,
	database *db.DB,
	adminKey string,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		log:      logger,
		catalog:  provider,
		gateway:  gw,
		sessions: sessions,
		db:       database,
		adminKey: adminKey,
		now:      time.Now,
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/services", s.handleServices)
	mux.HandleFunc("/api/v1/formations", s.handleFormations)
	mux.HandleFunc("/api/v1/availability", s.handleAvailabilityMonth)
	mux.HandleFunc("/api/v1/availability/slots", s.handleAvailabilitySlots)
	mux.HandleFunc("/api/v1/sessions", s.handleCreateSession)
	mux.HandleFunc("/api/v1/sessions/", s.handleSession)
	mux.HandleFunc("/api/v1/admin/reservations", s.handleAdminReservations)
	mux.HandleFunc("/api/v1/admin/reservations/export", s.handleAdminExport)
	return mux
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFlowError maps the flow's typed errors onto HTTP statuses: bad input is
// 400, a guard or availability conflict is 409 and a failed gateway call is
// 502 so the client knows a retry may succeed.
func writeFlowError(w http.ResponseWriter, err error) {
	var (
		validation *reservation.ValidationError
		conflict   *reservation.AvailabilityConflictError
		step       *reservation.StepError
		submission *reservation.SubmissionError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, reservation.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &step):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &submission):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
