package handlers

import (
	"net/http"

	"github.com/pooltrack/tournament-api/repositories"
	"github.com/pooltrack/tournament-api/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// Create godoc
// @Summary Create a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.CreateTournamentInput true "Tournament data"
// @Success 201 {object} map[string]interface{} "Tournament created"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /tournament/create [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusCreated, jsonResponse{"newTournament": tournament}, "tournament created successfully")
}

// List godoc
// @Summary List tournaments with optional filters, each populated with its mapping entries
// @Tags tournaments
// @Produce json
// @Param startDate query int false "Minimum date"
// @Param endDate query int false "Maximum date"
// @Param name query string false "Exact name match"
// @Param minTip query int false "Minimum totalTip"
// @Param maxTip query int false "Maximum totalTip"
// @Success 200 {object} map[string]interface{} "Tournaments fetched"
// @Failure 400 {object} map[string]interface{} "Invalid filter value"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /tournament/get [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTournamentFilter(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, tournaments, "tournaments fetched successfully")
}

// Update godoc
// @Summary Update a tournament
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body services.UpdateTournamentInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Tournament updated"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /tournament/update [post]
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, tournament, "tournament updated successfully")
}

// Delete godoc
// @Summary Delete a tournament and cascade over its mappings
// @Tags tournaments
// @Accept json
// @Produce json
// @Param body body object true "Tournament id"
// @Success 200 {object} map[string]interface{} "Tournament deleted"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /tournament/delete [post]
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID string `json:"id" validate:"required"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), input.ID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, jsonResponse{}, "tournament deleted successfully")
}

func parseTournamentFilter(r *http.Request) (repositories.ListTournamentsFilter, error) {
	var filter repositories.ListTournamentsFilter
	var err error

	if filter.DateFrom, err = queryInt64(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = queryInt64(r, "endDate"); err != nil {
		return filter, err
	}
	filter.Name = queryString(r, "name")
	if filter.MinTotalTip, err = queryInt64(r, "minTip"); err != nil {
		return filter, err
	}
	if filter.MaxTotalTip, err = queryInt64(r, "maxTip"); err != nil {
		return filter, err
	}
	return filter, nil
}
