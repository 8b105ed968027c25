// Seeds the local database with the studio's starting catalog so a fresh
// deployment has something to book.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"eclat/internal/config"
	"eclat/internal/db"
	"eclat/internal/model"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load(os.Getenv("ECLAT_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := db.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer database.Close()

	ctx := context.Background()

	services := []*model.Service{
		{Name: "Maquillage jour", Description: "Mise en beauté naturelle pour la journée", PriceCents: 6500, DurationMinutes: 60, IsActive: true},
		{Name: "Maquillage soirée", Description: "Maquillage sophistiqué pour vos événements", PriceCents: 8500, DurationMinutes: 90, IsActive: true},
		{Name: "Maquillage mariée", Description: "Essai et jour J compris", PriceCents: 25000, DurationMinutes: 120, IsActive: true},
		{Name: "Cours d'auto-maquillage", Description: "Apprenez à vous maquiller avec vos propres produits", PriceCents: 9000, DurationMinutes: 90, IsActive: true},
	}
	for _, svc := range services {
		if err := database.UpsertService(ctx, svc); err != nil {
			logger.Fatal().Err(err).Str("service", svc.Name).Msg("seed service failed")
		}
		logger.Info().Str("service", svc.Name).Msg("service seeded")
	}

	formations := []*model.Formation{
		{Title: "Initiation maquillage", Description: "Les bases du maquillage professionnel", PriceCents: 12000, DurationHours: 4, Level: model.LevelBeginner, MaxStudents: 6, IsActive: true},
		{Title: "Perfectionnement teint", Description: "Techniques avancées de teint et contouring", PriceCents: 18000, DurationHours: 6, Level: model.LevelIntermediate, MaxStudents: 4, IsActive: true},
		{Title: "Masterclass artistique", Description: "Création de looks éditoriaux et podium", PriceCents: 35000, DurationHours: 8, Level: model.LevelAdvanced, MaxStudents: 4, IsActive: true},
	}
	for _, form := range formations {
		if err := database.UpsertFormation(ctx, form); err != nil {
			logger.Fatal().Err(err).Str("formation", form.Title).Msg("seed formation failed")
		}
		logger.Info().Str("formation", form.Title).Msg("formation seeded")
	}

	logger.Info().Msg("seeding complete")
}
