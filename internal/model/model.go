// Package model holds the domain records shared across the service.
package model

import "time"

// FormationLevel is the difficulty level of a formation.
type FormationLevel string

const (
	LevelBeginner     FormationLevel = "beginner"
	LevelIntermediate FormationLevel = "intermediate"
	LevelAdvanced     FormationLevel = "advanced"
)

// Service is a single-session bookable offering with fixed price and duration.
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Formation is a scheduled, capacity-limited course offering.
type Formation struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	PriceCents    int64          `json:"price_cents"`
	DurationHours int            `json:"duration_hours"`
	Level         FormationLevel `json:"level"`
	MaxStudents   int            `json:"max_students"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCanceled  = "canceled"
)

// Reservation kinds.
const (
	KindService   = "service"
	KindFormation = "formation"
)

// Reservation is an accepted reservation draft persisted by the gateway.
type Reservation struct {
	ID              int64     `json:"id"`
	Kind            string    `json:"kind"`
	ItemID          int64     `json:"item_id"`
	ItemName        string    `json:"item_name"`
	Date            string    `json:"date"` // YYYY-MM-DD
	TimeSlot        string    `json:"time_slot"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Message         string    `json:"message,omitempty"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	IdempotencyKey  string    `json:"idempotency_key,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
