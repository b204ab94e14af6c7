package models

import "time"

type RecordKind string

const (
	RecordCharge RecordKind = "charge"
	RecordUse    RecordKind = "use"
)

// PointRecord is one immutable line of a user's charge/use history.
// IDs are assigned by the history store and are strictly increasing
// across all users.
type PointRecord struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Amount    int64      `json:"amount"`
	Kind      RecordKind `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
}
