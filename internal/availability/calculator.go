// Package availability decides which dates and time slots are open for booking.
package availability

import "time"

// MasterCatalog lists every half-hour slot the studio ever offers, in order.
// There are no slots over the midday break (12:00–14:00).
var MasterCatalog = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	"17:00",
}

const (
	// MaxAdvanceDays is the booking horizon; the day exactly MaxAdvanceDays
	// after the reference date is the last bookable day.
	MaxAdvanceDays = 60

	// sundaySlots is how many leading catalog entries would apply on a
	// Sunday. Sundays are closed, so this only matters if the weekday rule
	// is ever relaxed.
	sundaySlots = 4
)

// Calculator computes date availability and open slots. It is a pure function
// of its inputs: the reference date is injected rather than read from the
// clock, so identical inputs always produce identical output.
type Calculator struct {
	today     time.Time
	blackouts map[string]bool
	catalog   []string
}

// NewCalculator builds a calculator for the given reference date and blackout
// list. A nil or empty catalog falls back to MasterCatalog.
func NewCalculator(referenceDate time.Time, blackoutDates []time.Time, catalog []string) *Calculator {
	if len(catalog) == 0 {
		catalog = MasterCatalog
	}
	blackouts := make(map[string]bool, len(blackoutDates))
	for _, d := range blackoutDates {
		blackouts[dayKey(d)] = true
	}
	return &Calculator{
		today:     truncateToDay(referenceDate),
		blackouts: blackouts,
		catalog:   catalog,
	}
}

// IsUnavailable reports whether no booking at all is accepted on date:
// blackout dates, dates before the reference date, dates beyond the booking
// horizon and Sundays. Both bounds of the horizon are inclusive.
func (c *Calculator) IsUnavailable(date time.Time) bool {
	d := truncateToDay(date)
	if c.blackouts[dayKey(d)] {
		return true
	}
	if d.Before(c.today) {
		return true
	}
	if d.After(c.today.AddDate(0, 0, MaxAdvanceDays)) {
		return true
	}
	return d.Weekday() == time.Sunday
}

// OpenSlots returns the slots open on date, a subset of the catalog in
// catalog order: Saturdays keep every other slot (even catalog indexes),
// regular weekdays keep the full catalog. Unavailable dates have no slots.
func (c *Calculator) OpenSlots(date time.Time) []string {
	if c.IsUnavailable(date) {
		return nil
	}

	switch truncateToDay(date).Weekday() {
	case time.Sunday:
		// Unreachable while Sundays are closed; kept so the weekday rule
		// is complete on its own.
		n := sundaySlots
		if n > len(c.catalog) {
			n = len(c.catalog)
		}
		return append([]string(nil), c.catalog[:n]...)
	case time.Saturday:
		slots := make([]string, 0, (len(c.catalog)+1)/2)
		for i := 0; i < len(c.catalog); i += 2 {
			slots = append(slots, c.catalog[i])
		}
		return slots
	default:
		return append([]string(nil), c.catalog...)
	}
}

// HasSlot reports whether slot is open on date.
func (c *Calculator) HasSlot(date time.Time, slot string) bool {
	for _, s := range c.OpenSlots(date) {
		if s == slot {
			return true
		}
	}
	return false
}

// truncateToDay drops the time of day and re-anchors the calendar date in
// UTC, so dates parsed from "2006-01-02" strings and dates carrying a server
// location compare as the same day.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
