package availability

import (
	"testing"
	"time"
)

// 2025-06-10 is a Tuesday.
var refDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestIsUnavailable(t *testing.T) {
	blackout := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC) // a Monday
	calc := NewCalculator(refDate, []time.Time{blackout}, nil)

	tests := []struct {
		name            string
		date            time.Time
		wantUnavailable bool
	}{
		{"yesterday", refDate.AddDate(0, 0, -1), true},
		{"today", refDate, false},
		{"tomorrow", refDate.AddDate(0, 0, 1), false},
		{"exactly 60 days ahead", refDate.AddDate(0, 0, 60), false}, // 2025-08-09, a Saturday
		{"61 days ahead", refDate.AddDate(0, 0, 61), true},
		{"66 days ahead", time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), true},
		{"next sunday", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"blackout date", blackout, true},
		{"day after blackout", blackout.AddDate(0, 0, 1), false},
		{"far past", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.IsUnavailable(tt.date); got != tt.wantUnavailable {
				t.Errorf("IsUnavailable(%s) = %v, want %v",
					tt.date.Format("2006-01-02"), got, tt.wantUnavailable)
			}
		})
	}
}

func TestIsUnavailableIgnoresTimeOfDay(t *testing.T) {
	calc := NewCalculator(refDate.Add(15*time.Hour), nil, nil)

	// Same calendar day as the reference date, earlier wall-clock time.
	date := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	if calc.IsUnavailable(date) {
		t.Error("the reference day itself must be bookable")
	}
}

func TestIsUnavailableIgnoresLocation(t *testing.T) {
	// The reference date carries a server location while candidate dates are
	// parsed from YYYY-MM-DD strings in UTC; the horizon bounds must still
	// compare by calendar day.
	tests := []struct {
		name string
		zone *time.Location
	}{
		{"zone ahead of UTC", time.FixedZone("UTC+2", 2*60*60)},
		{"zone behind UTC", time.FixedZone("UTC-5", -5*60*60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := time.Date(2025, 6, 10, 23, 30, 0, 0, tt.zone)
			calc := NewCalculator(local, nil, nil)

			today, err := time.Parse("2006-01-02", "2025-06-10")
			if err != nil {
				t.Fatal(err)
			}
			if calc.IsUnavailable(today) {
				t.Error("the reference day itself must be bookable")
			}

			lastDay := today.AddDate(0, 0, 60) // 2025-08-09, a Saturday
			if calc.IsUnavailable(lastDay) {
				t.Error("the day exactly 60 days out must be bookable")
			}
			if !calc.IsUnavailable(today.AddDate(0, 0, 61)) {
				t.Error("61 days out must be unavailable")
			}
			if !calc.IsUnavailable(today.AddDate(0, 0, -1)) {
				t.Error("the day before the reference date must be unavailable")
			}
		})
	}
}

func TestOpenSlotsWeekday(t *testing.T) {
	calc := NewCalculator(refDate, nil, nil)

	// 2025-06-12 is a Thursday.
	slots := calc.OpenSlots(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	if len(slots) != len(MasterCatalog) {
		t.Fatalf("expected %d slots, got %d", len(MasterCatalog), len(slots))
	}
	for i, s := range slots {
		if s != MasterCatalog[i] {
			t.Errorf("slot %d: expected %s, got %s", i, MasterCatalog[i], s)
		}
	}
}

func TestOpenSlotsSaturday(t *testing.T) {
	calc := NewCalculator(refDate, nil, nil)

	// 2025-06-14 is a Saturday.
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	if calc.IsUnavailable(saturday) {
		t.Fatal("saturday within the horizon must be available")
	}

	slots := calc.OpenSlots(saturday)
	want := []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d (%v)", len(want), len(slots), slots)
	}
	for i, s := range slots {
		if s != want[i] {
			t.Errorf("slot %d: expected %s, got %s", i, want[i], s)
		}
	}
}

func TestOpenSlotsUnavailableDate(t *testing.T) {
	calc := NewCalculator(refDate, nil, nil)

	if slots := calc.OpenSlots(refDate.AddDate(0, 0, -3)); slots != nil {
		t.Errorf("expected no slots for a past date, got %v", slots)
	}
	if slots := calc.OpenSlots(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)); slots != nil {
		t.Errorf("expected no slots for a sunday, got %v", slots)
	}
}

func TestOpenSlotsIdempotent(t *testing.T) {
	calc := NewCalculator(refDate, nil, nil)
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	first := calc.OpenSlots(date)
	second := calc.OpenSlots(date)
	if len(first) != len(second) {
		t.Fatalf("slot count changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d changed between calls: %s vs %s", i, first[i], second[i])
		}
	}

	// Mutating the returned slice must not affect later calls.
	first[0] = "corrupted"
	third := calc.OpenSlots(date)
	if third[0] != "09:00" {
		t.Error("returned slice must be a copy of the catalog")
	}
}

func TestHasSlot(t *testing.T) {
	calc := NewCalculator(refDate, nil, nil)
	saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	if !calc.HasSlot(saturday, "10:00") {
		t.Error("10:00 should be open on saturday")
	}
	if calc.HasSlot(saturday, "09:30") {
		t.Error("09:30 is an odd catalog index and closed on saturday")
	}
	if calc.HasSlot(saturday, "20:00") {
		t.Error("20:00 is not in the catalog at all")
	}
}

func TestCustomCatalog(t *testing.T) {
	catalog := []string{"10:00", "10:30", "11:00"}
	calc := NewCalculator(refDate, nil, catalog)

	// Thursday: full custom catalog.
	slots := calc.OpenSlots(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	if len(slots) != 3 {
		t.Errorf("expected 3 slots, got %d", len(slots))
	}

	// Saturday: even indexes only.
	slots = calc.OpenSlots(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	if len(slots) != 2 || slots[0] != "10:00" || slots[1] != "11:00" {
		t.Errorf("expected [10:00 11:00], got %v", slots)
	}
}
