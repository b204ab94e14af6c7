package ledger

import (
	"sync"
	"time"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// Engine serializes balance mutations per user. For a fixed user each
// charge/use runs validate -> read -> compute -> write -> append as
// one critical section, so every operation observes all previously
// completed mutations for that user. Different users never contend:
// the lock is keyed by user ID, created lazily and retained for the
// process lifetime.
type Engine struct {
	balances *BalanceStore
	history  *HistoryStore
	locks    sync.Map // int64 -> *sync.Mutex
	now      func() time.Time
}

type Option func(*Engine)

// WithClock replaces the engine's time source. Tests use this to step
// through the duplicate-charge window deterministically.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(balances *BalanceStore, history *HistoryStore, opts ...Option) *Engine {
	e := &Engine{balances: balances, history: history, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) lockFor(userID int64) *sync.Mutex {
	if v, ok := e.locks.Load(userID); ok {
		return v.(*sync.Mutex)
	}
	v, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Charge credits amount to the user's balance. On any policy
// rejection the stores are left untouched and the typed error is
// returned; on success the new balance and the appended history
// record (sharing the same timestamp) are returned together.
func (e *Engine) Charge(userID, amount int64) (models.Balance, models.PointRecord, error) {
	mu := e.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	now := e.now()
	if err := ValidateAmount(amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	if err := ValidateChargeCeiling(amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	current := e.balances.Get(userID)
	if err := ValidateMaxBalance(current.Amount, amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	if err := DetectDuplicateCharge(e.history.ListByUser(userID), amount, now); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}

	updated := e.balances.Put(userID, current.Amount+amount, now)
	rec := e.history.Append(userID, amount, models.RecordCharge, now)
	return updated, rec, nil
}

// Use debits amount from the user's balance. Same commit discipline
// as Charge.
func (e *Engine) Use(userID, amount int64) (models.Balance, models.PointRecord, error) {
	mu := e.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	now := e.now()
	if err := ValidateAmount(amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	if err := ValidateUseCeiling(amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	current := e.balances.Get(userID)
	if err := ValidateSufficientFunds(current.Amount, amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}
	if err := ValidateAuthenticationGate(amount); err != nil {
		return models.Balance{}, models.PointRecord{}, err
	}

	updated := e.balances.Put(userID, current.Amount-amount, now)
	rec := e.history.Append(userID, amount, models.RecordUse, now)
	return updated, rec, nil
}
