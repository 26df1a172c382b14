package models

import "time"

// Tournament mirrors Player: TotalWin/TotalTip are running sums over the
// tournament's mappings, Players the back-link set of assigned player ids.
type Tournament struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Date      int64     `json:"date" db:"date"`
	TotalWin  int64     `json:"totalWin" db:"total_win"`
	TotalTip  int64     `json:"totalTip" db:"total_tip"`
	Players   []string  `json:"players" db:"players"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
