// Package catalog exposes the bookable offerings to the reservation flow.
package catalog

import (
	"context"

	"eclat/internal/db"
	"eclat/internal/model"
)

// Provider supplies the active services and formations. Implemented by the
// local database and by the back-office API client.
type Provider interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	ListFormations(ctx context.Context) ([]model.Formation, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	GetFormation(ctx context.Context, id int64) (*model.Formation, error)
}

// DBProvider serves the catalog from the local database.
type DBProvider struct {
	db *db.DB
}

// NewDBProvider creates a database-backed provider.
func NewDBProvider(database *db.DB) *DBProvider {
	return &DBProvider{db: database}
}

func (p *DBProvider) ListServices(ctx context.Context) ([]model.Service, error) {
	return p.db.ListActiveServices(ctx)
}

func (p *DBProvider) ListFormations(ctx context.Context) ([]model.Formation, error) {
	return p.db.ListActiveFormations(ctx)
}

func (p *DBProvider) GetService(ctx context.Context, id int64) (*model.Service, error) {
	return p.db.GetService(ctx, id)
}

func (p *DBProvider) GetFormation(ctx context.Context, id int64) (*model.Formation, error) {
	return p.db.GetFormation(ctx, id)
}
