package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EarningStatus string

const (
	EarningPending  EarningStatus = "pending"
	EarningBatched  EarningStatus = "batched"
	EarningPaid     EarningStatus = "paid"
	EarningReversed EarningStatus = "reversed"
)

// EarningTransitions is the earning lifecycle. batched -> pending is the
// revert taken when the owning payout fails.
var EarningTransitions = map[EarningStatus][]EarningStatus{
	EarningPending: {EarningBatched, EarningReversed},
	EarningBatched: {EarningPaid, EarningPending, EarningReversed},
}

func CanTransitionEarning(from, to EarningStatus) bool {
	return allowed(EarningTransitions, from, to)
}

// CleanerEarning is money owed to a cleaner for one approved job.
type CleanerEarning struct {
	ID        string          `json:"id" gorm:"type:varchar(64);primaryKey"`
	CleanerID string          `json:"cleaner_id" gorm:"type:varchar(64);not null;index:idx_earnings_cleaner_status"`
	BookingID string          `json:"booking_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	USDDue    decimal.Decimal `json:"usd_due" gorm:"type:numeric(12,2);not null"`
	Status    EarningStatus   `json:"status" gorm:"type:varchar(16);not null;index:idx_earnings_cleaner_status"`
	PayoutID  *string         `json:"payout_id,omitempty" gorm:"type:varchar(64);index"`
	CreatedAt time.Time       `json:"created_date"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (CleanerEarning) TableName() string { return "cleaner_earnings" }

func allowed[S comparable](table map[S][]S, from, to S) bool {
	next, ok := table[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
