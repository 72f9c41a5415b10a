package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/voltgrid/chargefinder/internal/domain"
	"github.com/voltgrid/chargefinder/internal/service"
)

// ChargerHandler handles charger CRUD HTTP requests. All routes are
// gated by RequireAuth.
type ChargerHandler struct {
	chargers *service.ChargerService
}

// NewChargerHandler creates a new ChargerHandler.
func NewChargerHandler(chargers *service.ChargerService) *ChargerHandler {
	return &ChargerHandler{chargers: chargers}
}

// chargerRequest is the wire shape shared by create and update. Pointers
// distinguish absent fields from zero values; client-supplied id and
// timestamps are not part of the shape and are therefore ignored.
type chargerRequest struct {
	Name     *string `json:"name"`
	Location *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
	Status        *string  `json:"status"`
	PowerOutput   *float64 `json:"powerOutput"`
	ConnectorType *string  `json:"connectorType"`
}

// HandleList returns all chargers.
//
//	@Summary   List chargers
//	@Tags      chargers
//	@Produce   json
//	@Success   200  {array}   ChargerDTO
//	@Failure   401  {object}  MessageResponse
//	@Failure   500  {object}  MessageResponse
//	@Security  BearerAuth
//	@Router    /chargers [get]
func (h *ChargerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	chargers, err := h.chargers.List(r.Context())
	if err != nil {
		slog.Error("list chargers", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toChargerDTOs(chargers))
}

// HandleCreate creates a charger.
//
//	@Summary   Create a charger
//	@Tags      chargers
//	@Accept    json
//	@Produce   json
//	@Param     charger  body      chargerRequest  true  "Charger attributes"
//	@Success   201      {object}  ChargerDTO
//	@Failure   400      {object}  MessageResponse  "Malformed body or validation errors"
//	@Failure   401      {object}  MessageResponse
//	@Failure   500      {object}  MessageResponse
//	@Security  BearerAuth
//	@Router    /chargers [post]
func (h *ChargerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req chargerRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.CreateChargerInput{}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Location != nil {
		input.Latitude = req.Location.Latitude
		input.Longitude = req.Location.Longitude
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	input.PowerOutput = req.PowerOutput
	if req.ConnectorType != nil {
		input.ConnectorType = *req.ConnectorType
	}

	charger, err := h.chargers.Create(r.Context(), input)
	if err != nil {
		h.respondError(w, err, "create charger")
		return
	}
	writeJSON(w, http.StatusCreated, toChargerDTO(charger))
}

// HandleUpdate applies a partial update to a charger. Omitted fields
// keep their current values; an empty body is a valid no-op.
//
//	@Summary   Update a charger
//	@Tags      chargers
//	@Accept    json
//	@Produce   json
//	@Param     id       path      string          true   "Charger id"
//	@Param     charger  body      chargerRequest  false  "Fields to change"
//	@Success   200      {object}  ChargerDTO
//	@Failure   400      {object}  MessageResponse  "Malformed body or validation errors"
//	@Failure   401      {object}  MessageResponse
//	@Failure   404      {object}  MessageResponse
//	@Failure   500      {object}  MessageResponse
//	@Security  BearerAuth
//	@Router    /chargers/{id} [put]
func (h *ChargerHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	// An empty body is a valid no-op update; malformed JSON is not.
	var req chargerRequest
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateChargerInput{
		Name:          req.Name,
		Status:        req.Status,
		PowerOutput:   req.PowerOutput,
		ConnectorType: req.ConnectorType,
	}
	if req.Location != nil {
		input.Latitude = req.Location.Latitude
		input.Longitude = req.Location.Longitude
	}

	charger, err := h.chargers.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.respondError(w, err, "update charger")
		return
	}
	writeJSON(w, http.StatusOK, toChargerDTO(charger))
}

// HandleDelete removes a charger.
//
//	@Summary   Delete a charger
//	@Tags      chargers
//	@Produce   json
//	@Param     id   path      string  true  "Charger id"
//	@Success   200  {object}  MessageResponse
//	@Failure   401  {object}  MessageResponse
//	@Failure   404  {object}  MessageResponse
//	@Failure   500  {object}  MessageResponse
//	@Security  BearerAuth
//	@Router    /chargers/{id} [delete]
func (h *ChargerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.chargers.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, err, "delete charger")
		return
	}
	writeMessage(w, http.StatusOK, "Charger deleted successfully")
}

// respondError maps service errors to the API error taxonomy. Storage
// failures are caught here, logged, and converted to a generic 500.
func (h *ChargerHandler) respondError(w http.ResponseWriter, err error, op string) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Charger not found")
	default:
		slog.Error(op, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
