package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eclat/internal/model"
)

// ListActiveServices returns all active services ordered by name.
func (db *DB) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, description, price_cents, duration_minutes, is_active, created_at, updated_at
		FROM services
		WHERE is_active = 1
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.PriceCents,
			&s.DurationMinutes, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// GetService returns a service by id, or nil when it does not exist.
func (db *DB) GetService(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	err := db.QueryRowContext(ctx, `
		SELECT id, name, description, price_cents, duration_minutes, is_active, created_at, updated_at
		FROM services WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.PriceCents,
		&s.DurationMinutes, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertService creates or updates a service by name.
func (db *DB) UpsertService(ctx context.Context, s *model.Service) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO services (name, description, price_cents, duration_minutes, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			price_cents = excluded.price_cents,
			duration_minutes = excluded.duration_minutes,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		s.Name, s.Description, s.PriceCents, s.DurationMinutes, s.IsActive, now, now,
	)
	return err
}

// ListActiveFormations returns all active formations ordered by title.
func (db *DB) ListActiveFormations(ctx context.Context) ([]model.Formation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, price_cents, duration_hours, level, max_students, is_active, created_at, updated_at
		FROM formations
		WHERE is_active = 1
		ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formations []model.Formation
	for rows.Next() {
		var f model.Formation
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.PriceCents, &f.DurationHours,
			&f.Level, &f.MaxStudents, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		formations = append(formations, f)
	}
	return formations, rows.Err()
}

// GetFormation returns a formation by id, or nil when it does not exist.
func (db *DB) GetFormation(ctx context.Context, id int64) (*model.Formation, error) {
	var f model.Formation
	err := db.QueryRowContext(ctx, `
		SELECT id, title, description, price_cents, duration_hours, level, max_students, is_active, created_at, updated_at
		FROM formations WHERE id = ?`, id,
	).Scan(&f.ID, &f.Title, &f.Description, &f.PriceCents, &f.DurationHours,
		&f.Level, &f.MaxStudents, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpsertFormation creates or updates a formation by title.
func (db *DB) UpsertFormation(ctx context.Context, f *model.Formation) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO formations (title, description, price_cents, duration_hours, level, max_students, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			description = excluded.description,
			price_cents = excluded.price_cents,
			duration_hours = excluded.duration_hours,
			level = excluded.level,
			max_students = excluded.max_students,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at`,
		f.Title, f.Description, f.PriceCents, f.DurationHours, f.Level, f.MaxStudents, f.IsActive, now, now,
	)
	return err
}
