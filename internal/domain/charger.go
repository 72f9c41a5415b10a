package domain

import (
	"context"
	"time"
)

type ChargerStatus string

const (
	ChargerStatusActive   ChargerStatus = "Active"
	ChargerStatusInactive ChargerStatus = "Inactive"
)

// Location is a plain latitude/longitude pair. No geospatial indexing or
// search semantics beyond storing the two numbers.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Charger is a charging station document. Chargers are global: they carry
// no owner reference and any authenticated user may mutate any charger.
type Charger struct {
	ID            string
	Name          string
	Location      Location
	Status        ChargerStatus
	PowerOutput   float64
	ConnectorType string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChargerUpdate is a partial update: nil fields are left unchanged.
type ChargerUpdate struct {
	Name          *string
	Latitude      *float64
	Longitude     *float64
	Status        *ChargerStatus
	PowerOutput   *float64
	ConnectorType *string
}

// ChargerRepository defines persistence operations for chargers.
// Update and Delete return ErrNotFound for an unknown id; no operation
// partially succeeds.
type ChargerRepository interface {
	Create(ctx context.Context, charger *Charger) error
	GetByID(ctx context.Context, id string) (*Charger, error)
	List(ctx context.Context) ([]Charger, error)
	Update(ctx context.Context, id string, update ChargerUpdate) (*Charger, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
