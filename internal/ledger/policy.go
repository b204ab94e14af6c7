package ledger

import (
	"time"

	"github.com/baharkarakas/point-ledger/internal/models"
)

// Policy values. These are contractual; do not tune them without a
// matching change on the client side.
const (
	// MaxChargeAmount is the most a single charge may credit.
	MaxChargeAmount int64 = 1_000_000
	// MaxUseAmount is the most a single use may debit.
	MaxUseAmount int64 = 1_000_000
	// MaxBalance is the most points a user may hold in total.
	MaxBalance int64 = 5_000_000
	// VerificationThreshold is the use amount (inclusive) at or above
	// which identity verification is required. Verification itself is
	// handled upstream; the ledger only rejects.
	VerificationThreshold int64 = 50_000
	// DuplicateChargeWindow is how far back an identical charge amount
	// counts as suspicious.
	DuplicateChargeWindow = 10 * time.Second
)

// The validators below are pure: they read their arguments and return
// a rejection or nil, never touching store state. The engine runs
// them in a fixed order and stops at the first failure, so a later
// validator may assume everything before it passed.

func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func ValidateChargeCeiling(amount int64) error {
	if amount > MaxChargeAmount {
		return ErrLimitExceeded
	}
	return nil
}

func ValidateUseCeiling(amount int64) error {
	if amount > MaxUseAmount {
		return ErrLimitExceeded
	}
	return nil
}

func ValidateMaxBalance(current, amount int64) error {
	if current+amount > MaxBalance {
		return ErrBalanceCapExceeded
	}
	return nil
}

func ValidateSufficientFunds(current, amount int64) error {
	if current < amount {
		return ErrInsufficientFunds
	}
	return nil
}

func ValidateAuthenticationGate(amount int64) error {
	if amount >= VerificationThreshold {
		return ErrAuthenticationRequired
	}
	return nil
}

// DetectDuplicateCharge rejects a charge when the same amount was
// already charged within the trailing window. Coarse fraud heuristic
// carried over from the point policy catalogue.
func DetectDuplicateCharge(history []models.PointRecord, amount int64, now time.Time) error {
	for _, rec := range history {
		if rec.Kind == models.RecordCharge &&
			rec.Amount == amount &&
			now.Sub(rec.CreatedAt) < DuplicateChargeWindow {
			return ErrSuspiciousActivity
		}
	}
	return nil
}
