package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	// Not-found (surfaced as soft-fail responses)
	ErrPlayerNotFound             = errors.New("player not found")
	ErrTournamentNotFound         = errors.New("tournament not found")
	ErrPlayerOrTournamentNotFound = errors.New("player or tournament does not exist")

	// Conflicts and business rules (also soft-fail)
	ErrPlayerEmailConflict    = errors.New("player already exists with this email")
	ErrTournamentNameConflict = errors.New("tournament already exists with this name")
	ErrAlreadyAssigned        = errors.New("player already assigned to this tournament")
	ErrNotAssigned            = errors.New("player is not assigned to this tournament")
)
