package handlers

import (
	"net/http"

	"github.com/pooltrack/tournament-api/services"
)

type MappingHandler struct {
	mappingService services.MappingService
}

func NewMappingHandler(ms services.MappingService) *MappingHandler {
	return &MappingHandler{
		mappingService: ms,
	}
}

// Assign godoc
// @Summary Assign a player to a tournament
// @Tags mappings
// @Description Creates the mapping row and adds its win/tip to both parents' aggregates.
// @Accept json
// @Produce json
// @Param body body services.AssignPlayerInput true "Assignment data"
// @Success 201 {object} map[string]interface{} "Player assigned"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /mapping/assign [post]
func (h *MappingHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input services.AssignPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	mapping, err := h.mappingService.AssignPlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusCreated, mapping, "player assigned successfully")
}

// Remove godoc
// @Summary Remove a player from a tournament
// @Tags mappings
// @Description Deletes the mapping row and subtracts its stored win/tip from both parents' aggregates.
// @Accept json
// @Produce json
// @Param body body services.RemovePlayerInput true "Removal data"
// @Success 200 {object} map[string]interface{} "Player removed"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /mapping/remove [post]
func (h *MappingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var input services.RemovePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	mapping, err := h.mappingService.RemovePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, mapping, "player removed successfully")
}
