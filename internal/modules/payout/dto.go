package payout

import (
	"time"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
)

type EarningView struct {
	domain.CleanerEarning
	Display StatusDisplay `json:"display"`
}

type EarningsSummary struct {
	CleanerID    string          `json:"cleaner_id"`
	PendingTotal decimal.Decimal `json:"pending_total"`
	MinInstant   decimal.Decimal `json:"min_instant_usd"`
	CanCashOut   bool            `json:"can_cash_out"`
	Earnings     []EarningView   `json:"earnings"`
}

type PayoutView struct {
	domain.Payout
	Display StatusDisplay `json:"display"`
}

type WeeklySummary struct {
	RunAt    time.Time       `json:"run_at"`
	Cutoff   time.Time       `json:"cutoff"`
	Cleaners int             `json:"cleaners"`
	Created  []string        `json:"created_payout_ids"`
	Skipped  int             `json:"skipped_below_minimum"`
	Failed   int             `json:"failed"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

type FailPayoutRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ReverseEarningRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
