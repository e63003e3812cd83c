package payout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
)

var (
	ErrNoEarnings              = errors.New("no pending earnings")
	ErrDuplicateEarning        = errors.New("earning already recorded for booking")
	ErrInvalidAmount           = errors.New("earning amount must be positive")
	ErrEarningNotFound         = errors.New("earning not found")
	ErrPayoutNotFound          = errors.New("payout not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrEarningInPayout         = errors.New("earning payout was settled concurrently")
	ErrPayoutInProgress        = errors.New("another payout is in progress for this cleaner")
)

// BelowMinimumError is returned when the pending balance does not reach the
// payout threshold. Nothing is mutated when it is returned.
type BelowMinimumError struct {
	Type      domain.PayoutType
	Threshold decimal.Decimal
	Amount    decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum %s payout is %s, current balance is $%s",
		e.Type, formatThreshold(e.Threshold), e.Amount.StringFixed(2))
}

func AsBelowMinimum(err error) (*BelowMinimumError, bool) {
	var bme *BelowMinimumError
	if errors.As(err, &bme) {
		return bme, true
	}
	return nil, false
}

// formatThreshold prints whole dollar thresholds without cents ("$10").
func formatThreshold(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "$" + d.Truncate(0).String()
	}
	return "$" + d.StringFixed(2)
}
