package handler

import (
	"time"

	"github.com/voltgrid/chargefinder/internal/domain"
)

// CredentialsRequest is the wire shape shared by register and login.
type CredentialsRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"secret1"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the generic {"message": ...} error shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// LocationDTO is the JSON representation of a charger location.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ChargerDTO is the JSON representation of a charger.
type ChargerDTO struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Location      LocationDTO `json:"location"`
	Status        string      `json:"status"`
	PowerOutput   float64     `json:"powerOutput"`
	ConnectorType string      `json:"connectorType"`
	CreatedAt     string      `json:"createdAt"`
	UpdatedAt     string      `json:"updatedAt"`
}

func toChargerDTO(c *domain.Charger) ChargerDTO {
	return ChargerDTO{
		ID:   c.ID,
		Name: c.Name,
		Location: LocationDTO{
			Latitude:  c.Location.Latitude,
			Longitude: c.Location.Longitude,
		},
		Status:        string(c.Status),
		PowerOutput:   c.PowerOutput,
		ConnectorType: c.ConnectorType,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}

func toChargerDTOs(chargers []domain.Charger) []ChargerDTO {
	dtos := make([]ChargerDTO, len(chargers))
	for i := range chargers {
		dtos[i] = toChargerDTO(&chargers[i])
	}
	return dtos
}
