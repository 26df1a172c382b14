package models

import "time"

// PlayerTournamentMapping is one player's participation record in one
// tournament, carrying its own win/tip contribution. At most one mapping
// exists per (player, tournament) pair.
type PlayerTournamentMapping struct {
	ID           string    `json:"id" db:"id"`
	Win          int64     `json:"win" db:"win"`
	Tip          int64     `json:"tip" db:"tip"`
	TournamentID string    `json:"tournament" db:"tournament_id"`
	PlayerID     string    `json:"player" db:"player_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// MappingEntry is the populated form returned by the tournament listing:
// the mapping row with the full player record attached.
type MappingEntry struct {
	ID     string  `json:"id"`
	Win    int64   `json:"win"`
	Tip    int64   `json:"tip"`
	Player *Player `json:"player"`
}
