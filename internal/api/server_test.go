package api

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"eclat/internal/catalog"
	"eclat/internal/db"
	"eclat/internal/gateway"
	"eclat/internal/model"
	"eclat/internal/reservation"
)

const testAdminKey = "test-admin-key"

// testReferenceDate is a Tuesday; the following Saturday and Sunday fall
// inside the booking horizon.
var testReferenceDate = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()

	database, err := db.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	seed := []*model.Service{
		{Name: "Maquillage jour", PriceCents: 6500, DurationMinutes: 60, IsActive: true},
		{Name: "Maquillage mariée", PriceCents: 25000, DurationMinutes: 120, IsActive: true},
		{Name: "Ancien forfait", PriceCents: 4000, DurationMinutes: 30, IsActive: false},
	}
	for _, svc := range seed {
		if err := database.UpsertService(ctx, svc); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}
	if err := database.UpsertFormation(ctx, &model.Formation{
		Title: "Initiation maquillage", PriceCents: 12000, DurationHours: 4,
		Level: model.LevelBeginner, MaxStudents: 6, IsActive: true,
	}); err != nil {
		t.Fatalf("seed formation: %v", err)
	}

	logger := zerolog.Nop()
	srv := NewServer(
		0,
		catalog.NewDBProvider(database),
		gateway.NewLocalGateway(database),
		reservation.NewSessionStore(30*time.Minute),
		database,
		testAdminKey,
		&logger,
	)
	srv.now = func() time.Time { return testReferenceDate }
	return srv, database
}
