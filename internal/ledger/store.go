package ledger

import (
	"sync"
	"time"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// BalanceStore holds the per-user balance cells. It is a dumb
// key-value primitive: Get never fails (a zero balance is created on
// first access) and Put overwrites unconditionally. Lost-update
// protection lives in the Engine, not here; the store only guarantees
// that individual reads and writes are atomic.
type BalanceStore struct {
	mu       sync.RWMutex
	balances map[int64]*models.Balance
	now      func() time.Time
}

type BalanceStoreOption func(*BalanceStore)

// WithBalanceClock replaces the store's time source, used only for
// stamping lazily created balances. Engine-driven writes carry their
// own timestamp through Put.
func WithBalanceClock(now func() time.Time) BalanceStoreOption {
	return func(s *BalanceStore) { s.now = now }
}

func NewBalanceStore(opts ...BalanceStoreOption) *BalanceStore {
	s := &BalanceStore{balances: make(map[int64]*models.Balance), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the user's balance, creating a zero balance
// if the user has never been seen.
func (s *BalanceStore) Get(userID int64) models.Balance {
	s.mu.RLock()
	if b, ok := s.balances[userID]; ok {
		out := *b
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.balances[userID]; ok {
		return *b
	}
	b := &models.Balance{UserID: userID, Amount: 0, LastUpdatedAt: s.now()}
	s.balances[userID] = b
	return *b
}

// Put overwrites the user's balance. The caller is responsible for
// having computed amount from the most recent Get while holding the
// user's mutation lock.
func (s *BalanceStore) Put(userID, amount int64, at time.Time) models.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[userID]
	if !ok {
		b = &models.Balance{UserID: userID}
		s.balances[userID] = b
	}
	b.Amount = amount
	b.LastUpdatedAt = at
	return *b
}
