package handlers

import (
	"net/http"

	"github.com/pooltrack/tournament-api/repositories"
	"github.com/pooltrack/tournament-api/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: ps,
	}
}

// Create godoc
// @Summary Create a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.CreatePlayerInput true "Player data"
// @Success 201 {object} map[string]interface{} "Player created"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /player/create [post]
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusCreated, jsonResponse{"newPlayer": player}, "player created successfully")
}

// List godoc
// @Summary List players with optional filters
// @Tags players
// @Produce json
// @Param startDate query int false "Minimum joiningDate"
// @Param endDate query int false "Maximum joiningDate"
// @Param name query string false "Exact name or email match"
// @Param minTip query int false "Minimum tip"
// @Param maxTip query int false "Maximum tip"
// @Param minBalance query int false "Minimum balance"
// @Param maxBalance query int false "Maximum balance"
// @Param minWin query int false "Minimum win"
// @Param maxWin query int false "Maximum win"
// @Success 200 {object} map[string]interface{} "Players fetched"
// @Failure 400 {object} map[string]interface{} "Invalid filter value"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /player/get [get]
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePlayerFilter(r)
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, players, "players fetched successfully")
}

// Update godoc
// @Summary Update a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.UpdatePlayerInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Player updated"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /player/update [post]
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}
	if errs := validateInput(input); errs != nil {
		failedValidationResponse(w, errs)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, player, "player updated successfully")
}

// Delete godoc
// @Summary Delete a player and cascade over its mappings
// @Tags players
// @Accept json
// @Produce json
// @Param body body object true "Player id"
// @Success 200 {object} map[string]interface{} "Player deleted"
// @Failure 400 {object} map[string]interface{} "Validation errors"
// @Failure 500 {object} map[string]interface{} "Internal error"
// @Router /player/delete [post]
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.playerService.DeletePlayer(r.Context(), input.ID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	okResponse(w, http.StatusOK, jsonResponse{}, "player deleted successfully")
}

func parsePlayerFilter(r *http.Request) (repositories.ListPlayersFilter, error) {
	var filter repositories.ListPlayersFilter
	var err error

	if filter.JoinedAfter, err = queryInt64(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.JoinedBefore, err = queryInt64(r, "endDate"); err != nil {
		return filter, err
	}
	filter.NameOrEmail = queryString(r, "name")
	if filter.MinTip, err = queryInt64(r, "minTip"); err != nil {
		return filter, err
	}
	if filter.MaxTip, err = queryInt64(r, "maxTip"); err != nil {
		return filter, err
	}
	if filter.MinBalance, err = queryInt64(r, "minBalance"); err != nil {
		return filter, err
	}
	if filter.MaxBalance, err = queryInt64(r, "maxBalance"); err != nil {
		return filter, err
	}
	if filter.MinWin, err = queryInt64(r, "minWin"); err != nil {
		return filter, err
	}
	if filter.MaxWin, err = queryInt64(r, "maxWin"); err != nil {
		return filter, err
	}
	return filter, nil
}
