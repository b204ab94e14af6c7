package ledger

import (
	"sync"
	"time"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// HistoryStore is the append-only charge/use log. Records are ordered
// by insertion per user and carry an ID that is unique and strictly
// increasing across the whole store.
type HistoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64][]models.PointRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{records: make(map[int64][]models.PointRecord)}
}

// Append assigns the next global record ID, stores the record and
// returns it.
func (s *HistoryStore) Append(userID, amount int64, kind models.RecordKind, at time.Time) models.PointRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	rec := models.PointRecord{
		ID:        s.nextID,
		UserID:    userID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: at,
	}
	s.records[userID] = append(s.records[userID], rec)
	return rec
}

// ListByUser returns the user's records in insertion order. Unknown
// users get an empty slice, never an error. The returned slice is a
// copy; appends after the call are not reflected in it.
func (s *HistoryStore) ListByUser(userID int64) []models.PointRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.records[userID]
	out := make([]models.PointRecord, len(recs))
	copy(out, recs)
	return out
}
