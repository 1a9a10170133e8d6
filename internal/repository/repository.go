package repository

import (
	"context"
	"fmt"

	"plant_monitor/internal/models"
)

// FixtureSource produces the raw site hierarchy. It is called once at start-up.
type FixtureSource interface {
	Load(ctx context.Context) ([]models.Site, error)
}

// Repository holds the loaded fixture snapshot shared by all services.
type Repository struct {
	Fixtures *Snapshot
}

// NewRepository loads the fixture from src and validates it into a snapshot.
func NewRepository(ctx context.Context, src FixtureSource) (*Repository, error) {
	sites, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	snap, err := NewSnapshot(sites)
	if err != nil {
		return nil, err
	}
	return &Repository{Fixtures: snap}, nil
}
