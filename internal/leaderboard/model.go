package leaderboard

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one row on the sales leaderboard.
type Entry struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	WonDeals     int       `json:"won_deals"`
	Revenue      float64   `json:"revenue"`
	RevenueLabel string    `json:"revenue_label"`
}

// Board is the computed leaderboard with its generation time.
type Board struct {
	Entries     []Entry   `json:"entries"`
	GeneratedAt time.Time `json:"generated_at"`
}
