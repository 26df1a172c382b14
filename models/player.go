package models

import "time"

// Player carries denormalized win/tip/balance totals maintained by the
// mapping service. Tournaments holds back-link ids implied by the player's
// mappings and is updated incrementally, never recomputed.
type Player struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	JoiningDate int64     `json:"joiningDate" db:"joining_date"`
	Tip         int64     `json:"tip" db:"tip"`
	Win         int64     `json:"win" db:"win"`
	Balance     int64     `json:"balance" db:"balance"`
	Tournaments []string  `json:"tournaments" db:"tournaments"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
