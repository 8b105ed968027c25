package api

import (
	"net/http"
	"strings"
	"time"

	"eclat/internal/metrics"
	"eclat/internal/model"
	"eclat/internal/reservation"
)

// SelectionRequest is the body for POST /api/v1/sessions/{id}/selection.
type SelectionRequest struct {
	Kind string `json:"kind"` // "service" or "formation"
	ID   int64  `json:"id"`
}

// DateTimeRequest is the body for POST /api/v1/sessions/{id}/datetime.
type DateTimeRequest struct {
	Date string `json:"date"` // Format: YYYY-MM-DD
	Time string `json:"time"` // Slot label, e.g. "14:30"
}

// SelectionView is the bound item in a session state response.
type SelectionView struct {
	Kind       string `json:"kind"`
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"price_cents"`
	Duration   int    `json:"duration_minutes"`
}

// SessionState is the state of a reservation session as returned to clients.
type SessionState struct {
	SessionID    string                    `json:"session_id"`
	Step         string                    `json:"step"`
	Selection    *SelectionView            `json:"selection,omitempty"`
	Date         string                    `json:"date,omitempty"`
	Time         string                    `json:"time,omitempty"`
	Contact      *reservation.ContactInfo  `json:"contact,omitempty"`
	Confirmation *reservation.Confirmation `json:"confirmation,omitempty"`
}

func sessionState(session *reservation.Session) SessionState {
	flow := session.Flow
	draft := flow.Draft()

	state := SessionState{
		SessionID:    session.ID,
		Step:         flow.Step().String(),
		Confirmation: flow.Confirmation(),
	}
	if !draft.Selection.IsEmpty() {
		state.Selection = &SelectionView{
			Kind:       draft.Selection.Kind().String(),
			ID:         draft.Selection.ItemID(),
			Label:      draft.Selection.Label(),
			PriceCents: draft.Selection.PriceCents(),
			Duration:   draft.Selection.DurationMinutes(),
		}
	}
	if !draft.When.IsZero() {
		state.Date = draft.When.Date.Format("2006-01-02")
		state.Time = draft.When.Time
	}
	if draft.Contact != (reservation.ContactInfo{}) {
		contact := draft.Contact
		state.Contact = &contact
	}
	return state
}

// handleCreateSession starts a new reservation session.
// POST /api/v1/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("session_create")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := s.sessions.Create()
	s.log.Info().Str("session_id", session.ID).Msg("reservation session started")
	writeJSON(w, http.StatusCreated, sessionState(session))
}

// handleSession dispatches /api/v1/sessions/{id} and its sub-resources.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/sessions/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	session := s.sessions.Get(id)
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found or expired")
		return
	}

	switch action {
	case "":
		metrics.IncHTTP("session_get")
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, sessionState(session))
	case "selection":
		s.handleSelection(w, r, session)
	case "datetime":
		s.handleDateTime(w, r, session)
	case "contact":
		s.handleContact(w, r, session)
	case "submit":
		s.handleSubmit(w, r, session)
	case "back":
		s.handleBack(w, r, session)
	case "restart":
		s.handleRestart(w, r, session)
	default:
		writeError(w, http.StatusNotFound, "unknown session action")
	}
}

// handleSelection binds a service or formation to the draft.
// POST /api/v1/sessions/{id}/selection
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_selection")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req SelectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var sel reservation.Selection
	switch req.Kind {
	case model.KindService:
		svc, err := s.catalog.GetService(r.Context(), req.ID)
		if err != nil {
			s.log.Error().Err(err).Int64("service_id", req.ID).Msg("failed to load service")
			writeError(w, http.StatusInternalServerError, "failed to load service")
			return
		}
		if svc == nil || !svc.IsActive {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		sel = reservation.ChooseService(*svc)
	case model.KindFormation:
		form, err := s.catalog.GetFormation(r.Context(), req.ID)
		if err != nil {
			s.log.Error().Err(err).Int64("formation_id", req.ID).Msg("failed to load formation")
			writeError(w, http.StatusInternalServerError, "failed to load formation")
			return
		}
		if form == nil || !form.IsActive {
			writeError(w, http.StatusNotFound, "formation not found")
			return
		}
		sel = reservation.ChooseFormation(*form)
	default:
		writeError(w, http.StatusBadRequest, "kind must be \"service\" or \"formation\"")
		return
	}

	if err := session.Flow.Choose(sel); err != nil {
		writeFlowError(w, err)
		return
	}
	metrics.IncStep(session.Flow.Step().String())
	writeJSON(w, http.StatusOK, sessionState(session))
}

// handleDateTime records the chosen date and slot.
// POST /api/v1/sessions/{id}/datetime
func (s *Server) handleDateTime(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_datetime")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req DateTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
	}

	calc, err := s.calculator(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load blackout dates")
		writeError(w, http.StatusInternalServerError, "failed to compute availability")
		return
	}

	choice := reservation.DateTimeChoice{Date: date, Time: req.Time}
	if err := session.Flow.ConfirmDateTime(calc, choice); err != nil {
		writeFlowError(w, err)
		return
	}
	metrics.IncStep(session.Flow.Step().String())
	writeJSON(w, http.StatusOK, sessionState(session))
}

// handleContact records the visitor's contact details.
// POST /api/v1/sessions/{id}/contact
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_contact")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var info reservation.ContactInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := session.Flow.ConfirmContact(info); err != nil {
		writeFlowError(w, err)
		return
	}
	metrics.IncStep(session.Flow.Step().String())
	writeJSON(w, http.StatusOK, sessionState(session))
}

// handleSubmit hands the draft to the gateway.
// POST /api/v1/sessions/{id}/submit
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_submit")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	draft := session.Flow.Draft()
	conf, err := session.Flow.Submit(r.Context(), s.gateway)
	if err != nil {
		metrics.IncReservationFailed()
		s.log.Error().Err(err).Str("session_id", session.ID).Msg("reservation submission failed")
		writeFlowError(w, err)
		return
	}

	metrics.IncReservationCreated(draft.Selection.Kind().String())
	metrics.IncStep(session.Flow.Step().String())
	s.log.Info().
		Str("session_id", session.ID).
		Int64("reservation_id", conf.ReservationID).
		Str("kind", draft.Selection.Kind().String()).
		Msg("reservation accepted")
	writeJSON(w, http.StatusOK, sessionState(session))
}

// handleBack moves the flow one step backwards.
// POST /api/v1/sessions/{id}/back
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_back")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := session.Flow.Back(); err != nil {
		writeFlowError(w, err)
		return
	}
	metrics.IncStep(session.Flow.Step().String())
	writeJSON(w, http.StatusOK, sessionState(session))
}

// handleRestart resets a finished flow for another reservation.
// POST /api/v1/sessions/{id}/restart
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, session *reservation.Session) {
	metrics.IncHTTP("session_restart")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := session.Flow.Restart(); err != nil {
		writeFlowError(w, err)
		return
	}
	metrics.IncStep(session.Flow.Step().String())
	writeJSON(w, http.StatusOK, sessionState(session))
}
