package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutType string

const (
	PayoutInstant PayoutType = "instant"
	PayoutWeekly  PayoutType = "weekly"
)

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
	PayoutFailed    PayoutStatus = "failed"
)

var PayoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending: {PayoutCompleted, PayoutFailed},
}

func CanTransitionPayout(from, to PayoutStatus) bool {
	return allowed(PayoutTransitions, from, to)
}

// Payout is one cash-out execution. GrossUSD equals the sum of the earnings
// batched against it; AmountUSD is what is transferred after FeeUSD.
type Payout struct {
	ID            string          `json:"id" gorm:"type:varchar(64);primaryKey"`
	CleanerID     string          `json:"cleaner_id" gorm:"type:varchar(64);not null;index"`
	BookingIDs    []string        `json:"booking_ids" gorm:"type:text;serializer:json"`
	GrossUSD      decimal.Decimal `json:"gross_usd" gorm:"type:numeric(12,2);not null"`
	AmountUSD     decimal.Decimal `json:"amount_usd" gorm:"type:numeric(12,2);not null"`
	FeeUSD        decimal.Decimal `json:"fee_usd" gorm:"type:numeric(12,2);not null"`
	PayoutType    PayoutType      `json:"payout_type" gorm:"type:varchar(16);not null;index"`
	Status        PayoutStatus    `json:"status" gorm:"type:varchar(16);not null;index"`
	BatchStart    time.Time       `json:"batch_start"`
	BatchEnd      time.Time       `json:"batch_end"`
	FailureReason string          `json:"failure_reason,omitempty" gorm:"type:text"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Payout) TableName() string { return "payouts" }
