package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eclat/internal/model"
)

// ReservationFilter narrows ListReservations.
type ReservationFilter struct {
	Status   string
	Kind     string
	DateFrom string // YYYY-MM-DD, inclusive
	DateTo   string // YYYY-MM-DD, inclusive
	Limit    int
	Offset   int
}

// CreateReservation persists a reservation. When the idempotency key has
// already been seen, the existing row's id is returned instead of inserting a
// duplicate, so client retries after a network failure are safe.
func (db *DB) CreateReservation(ctx context.Context, r *model.Reservation) (int64, error) {
	if r.IdempotencyKey != "" {
		existing, err := db.GetReservationByKey(ctx, r.IdempotencyKey)
		if err != nil && err != sql.ErrNoRows {
			return 0, fmt.Errorf("check idempotency key: %w", err)
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO reservations (
			kind, item_id, item_name, date, time_slot,
			first_name, last_name, email, phone, message,
			price_cents, duration_minutes, idempotency_key, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Kind, r.ItemID, r.ItemName, r.Date, r.TimeSlot,
		r.FirstName, r.LastName, r.Email, r.Phone, r.Message,
		r.PriceCents, r.DurationMinutes, nullable(r.IdempotencyKey), r.Status,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert reservation: %w", err)
	}
	return res.LastInsertId()
}

// GetReservation returns a reservation by id.
func (db *DB) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	row := db.QueryRowContext(ctx, selectReservation+" WHERE id = ?", id)
	return scanReservation(row)
}

// GetReservationByKey returns a reservation by idempotency key, or nil when
// the key is unknown.
func (db *DB) GetReservationByKey(ctx context.Context, key string) (*model.Reservation, error) {
	row := db.QueryRowContext(ctx, selectReservation+" WHERE idempotency_key = ?", key)
	r, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// ListReservations returns reservations matching the filter, newest first.
func (db *DB) ListReservations(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error) {
	query := selectReservation + " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.DateFrom != "" {
		query += " AND date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND date <= ?"
		args = append(args, filter.DateTo)
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *r)
	}
	return reservations, rows.Err()
}

// UpdateReservationStatus changes a reservation's status.
func (db *DB) UpdateReservationStatus(ctx context.Context, id int64, status string) error {
	_, err := db.ExecContext(ctx,
		"UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	return err
}

const selectReservation = `
	SELECT id, kind, item_id, item_name, date, time_slot,
	       first_name, last_name, email, phone, message,
	       price_cents, duration_minutes, idempotency_key, status,
	       created_at, updated_at
	FROM reservations`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var r model.Reservation
	var message, key sql.NullString
	err := row.Scan(
		&r.ID, &r.Kind, &r.ItemID, &r.ItemName, &r.Date, &r.TimeSlot,
		&r.FirstName, &r.LastName, &r.Email, &r.Phone, &message,
		&r.PriceCents, &r.DurationMinutes, &key, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if message.Valid {
		r.Message = message.String
	}
	if key.Valid {
		r.IdempotencyKey = key.String
	}
	return &r, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
