package db

import (
	"context"
	"time"
)

// AddBlackoutDate marks a date as fully unavailable.
func (db *DB) AddBlackoutDate(ctx context.Context, date time.Time, reason string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO blackout_dates (date, reason) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET reason = excluded.reason`,
		date.Format("2006-01-02"), reason,
	)
	return err
}

// RemoveBlackoutDate clears a blackout.
func (db *DB) RemoveBlackoutDate(ctx context.Context, date time.Time) error {
	_, err := db.ExecContext(ctx,
		"DELETE FROM blackout_dates WHERE date = ?",
		date.Format("2006-01-02"),
	)
	return err
}

// ListBlackoutDates returns all blackout dates in ascending order.
func (db *DB) ListBlackoutDates(ctx context.Context) ([]time.Time, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT date FROM blackout_dates ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
