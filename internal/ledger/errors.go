package ledger

import "errors"

// Every failure below is a rejection of a single request, never fatal
// to the process. Callers match with errors.Is.
var (
	ErrInvalidUser            = errors.New("invalid user id")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrLimitExceeded          = errors.New("amount exceeds per-transaction limit")
	ErrBalanceCapExceeded     = errors.New("maximum balance exceeded")
	ErrInsufficientFunds      = errors.New("insufficient point balance")
	ErrAuthenticationRequired = errors.New("identity verification required")
	ErrSuspiciousActivity     = errors.New("suspicious charge detected")
)

// Code maps a rejection to a stable machine-readable code for API
// responses and metrics labels. Unknown errors map to internal_error.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUser):
		return "invalid_user"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ErrBalanceCapExceeded):
		return "balance_cap_exceeded"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAuthenticationRequired):
		return "authentication_required"
	case errors.Is(err, ErrSuspiciousActivity):
		return "suspicious_activity"
	default:
		return "internal_error"
	}
}
