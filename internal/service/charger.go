package service

import (
	"context"
	"fmt"

	"github.com/voltgrid/chargefinder/internal/domain"
)

// ChargerService owns the business rules for charger CRUD. Field
// validation runs before any store access; a request that fails
// validation performs no write.
type ChargerService struct {
	chargers domain.ChargerRepository
}

// NewChargerService creates a new ChargerService.
func NewChargerService(chargers domain.ChargerRepository) *ChargerService {
	return &ChargerService{chargers: chargers}
}

// CreateChargerInput carries the client-supplied fields for creation.
// Pointer fields distinguish "absent" from legitimate zero values
// (latitude 0 and powerOutput 0 are both valid).
type CreateChargerInput struct {
	Name          string   `json:"name" validate:"required"`
	Latitude      *float64 `json:"latitude" validate:"required,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required,longitude"`
	Status        string   `json:"status" validate:"omitempty,oneof=Active Inactive"`
	PowerOutput   *float64 `json:"powerOutput" validate:"required,gte=0"`
	ConnectorType string   `json:"connectorType" validate:"required"`
}

// UpdateChargerInput carries a partial update: nil fields are left
// unchanged, supplied fields are re-validated against the same
// constraints as creation.
type UpdateChargerInput struct {
	Name          *string  `json:"name" validate:"omitnil,min=1"`
	Latitude      *float64 `json:"latitude" validate:"omitnil,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitnil,longitude"`
	Status        *string  `json:"status" validate:"omitnil,oneof=Active Inactive"`
	PowerOutput   *float64 `json:"powerOutput" validate:"omitnil,gte=0"`
	ConnectorType *string  `json:"connectorType" validate:"omitnil,min=1"`
}

// List returns all chargers.
func (s *ChargerService) List(ctx context.Context) ([]domain.Charger, error) {
	chargers, err := s.chargers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chargers: %w", err)
	}
	return chargers, nil
}

// Get returns one charger by id.
func (s *ChargerService) Get(ctx context.Context, id string) (*domain.Charger, error) {
	return s.chargers.GetByID(ctx, id)
}

// Create validates the input and persists a new charger. Client-supplied
// id and timestamps are ignored: the store generates the id and stamps
// createdAt/updatedAt. Status defaults to Active when omitted.
func (s *ChargerService) Create(ctx context.Context, input CreateChargerInput) (*domain.Charger, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	status := domain.ChargerStatus(input.Status)
	if status == "" {
		status = domain.ChargerStatusActive
	}

	charger := &domain.Charger{
		Name: input.Name,
		Location: domain.Location{
			Latitude:  *input.Latitude,
			Longitude: *input.Longitude,
		},
		Status:        status,
		PowerOutput:   *input.PowerOutput,
		ConnectorType: input.ConnectorType,
	}
	if err := s.chargers.Create(ctx, charger); err != nil {
		return nil, fmt.Errorf("create charger: %w", err)
	}
	return charger, nil
}

// Update applies only the supplied fields, refreshes updatedAt, and
// returns the updated charger. An unknown id yields domain.ErrNotFound.
func (s *ChargerService) Update(ctx context.Context, id string, input UpdateChargerInput) (*domain.Charger, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	update := domain.ChargerUpdate{
		Name:          input.Name,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		PowerOutput:   input.PowerOutput,
		ConnectorType: input.ConnectorType,
	}
	if input.Status != nil {
		status := domain.ChargerStatus(*input.Status)
		update.Status = &status
	}

	return s.chargers.Update(ctx, id, update)
}

// Delete removes a charger. An unknown id yields domain.ErrNotFound.
func (s *ChargerService) Delete(ctx context.Context, id string) error {
	return s.chargers.Delete(ctx, id)
}
