// Package gateway implements the submission side of the reservation flow:
// accepted drafts become persisted reservations, either locally or through
// the back-office API.
package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"eclat/internal/backoffice"
	"eclat/internal/db"
	"eclat/internal/model"
	"eclat/internal/notify"
	"eclat/internal/reservation"
)

// LocalGateway persists accepted drafts in the local database.
type LocalGateway struct {
	db *db.DB
}

// NewLocalGateway creates a database-backed gateway.
func NewLocalGateway(database *db.DB) *LocalGateway {
	return &LocalGateway{db: database}
}

// Submit stores the draft as a pending reservation. A fresh idempotency key
// is attached so the write can be retried safely.
func (g *LocalGateway) Submit(ctx context.Context, draft reservation.Draft) (*reservation.Confirmation, error) {
	rec, err := draftToReservation(draft)
	if err != nil {
		return nil, err
	}

	id, err := g.db.CreateReservation(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("store reservation: %w", err)
	}
	return &reservation.Confirmation{
		ReservationID: id,
		Reference:     fmt.Sprintf("ECL-%d", id),
	}, nil
}

// RemoteGateway submits accepted drafts to the back-office API.
type RemoteGateway struct {
	client *backoffice.Client
}

// NewRemoteGateway creates a gateway backed by the back-office client.
func NewRemoteGateway(client *backoffice.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// Submit posts the draft with a fresh idempotency key.
func (g *RemoteGateway) Submit(ctx context.Context, draft reservation.Draft) (*reservation.Confirmation, error) {
	rec, err := draftToReservation(draft)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.SubmitReservation(ctx, backoffice.SubmitRequest{
		Kind:            rec.Kind,
		ItemID:          rec.ItemID,
		ItemName:        rec.ItemName,
		Date:            rec.Date,
		TimeSlot:        rec.TimeSlot,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Email:           rec.Email,
		Phone:           rec.Phone,
		Message:         rec.Message,
		PriceCents:      rec.PriceCents,
		DurationMinutes: rec.DurationMinutes,
		IdempotencyKey:  rec.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return &reservation.Confirmation{
		ReservationID: resp.ReservationID,
		Reference:     resp.Reference,
	}, nil
}

// NotifyingGateway wraps another gateway and announces accepted reservations
// to the managers. Notification failures are logged, never surfaced: the
// reservation is already accepted by the time we notify.
type NotifyingGateway struct {
	inner    reservation.SubmissionGateway
	notifier notify.Notifier
	log      *zerolog.Logger
}

// WithNotifications wraps gw so accepted submissions are announced.
func WithNotifications(gw reservation.SubmissionGateway, notifier notify.Notifier, logger *zerolog.Logger) *NotifyingGateway {
	return &NotifyingGateway{inner: gw, notifier: notifier, log: logger}
}

func (g *NotifyingGateway) Submit(ctx context.Context, draft reservation.Draft) (*reservation.Confirmation, error) {
	conf, err := g.inner.Submit(ctx, draft)
	if err != nil {
		return nil, err
	}

	rec, recErr := draftToReservation(draft)
	if recErr == nil {
		rec.ID = conf.ReservationID
		if notifyErr := g.notifier.NotifyReservation(ctx, *rec); notifyErr != nil {
			g.log.Error().Err(notifyErr).
				Int64("reservation_id", conf.ReservationID).
				Msg("failed to notify managers about reservation")
		}
	}
	return conf, nil
}

// draftToReservation serializes a finalized draft, deriving price and
// duration from the selection.
func draftToReservation(draft reservation.Draft) (*model.Reservation, error) {
	if draft.Selection.IsEmpty() {
		return nil, fmt.Errorf("draft has no selection")
	}
	if draft.When.IsZero() {
		return nil, fmt.Errorf("draft has no date/time choice")
	}

	return &model.Reservation{
		Kind:            draft.Selection.Kind().String(),
		ItemID:          draft.Selection.ItemID(),
		ItemName:        draft.Selection.Label(),
		Date:            draft.When.Date.Format("2006-01-02"),
		TimeSlot:        draft.When.Time,
		FirstName:       draft.Contact.FirstName,
		LastName:        draft.Contact.LastName,
		Email:           draft.Contact.Email,
		Phone:           draft.Contact.Phone,
		Message:         draft.Contact.Message,
		PriceCents:      draft.Selection.PriceCents(),
		DurationMinutes: draft.Selection.DurationMinutes(),
		IdempotencyKey:  uuid.New().String(),
		Status:          model.ReservationPending,
	}, nil
}
