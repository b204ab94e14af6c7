package models

import "time"

// Balance is a user's current point total. One instance per user,
// created lazily at zero on first access. Mutated only by the ledger
// engine; everything outside the engine sees value copies.
type Balance struct {
	UserID        int64     `json:"user_id"`
	Amount        int64     `json:"amount"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}
