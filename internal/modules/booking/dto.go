package booking

import (
	"github.com/shopspring/decimal"

	"puretask/internal/domain"
	"puretask/internal/modules/pricing"
)

type CreateBookingRequest struct {
	pricing.QuoteRequest
	Notes string `json:"notes" binding:"max=2000"`
}

// ApproveRequest overrides the earning amount; zero uses the quoted total.
type ApproveRequest struct {
	USDDue decimal.Decimal `json:"usd_due"`
}

type BookingWithQuote struct {
	Booking *domain.Booking `json:"booking"`
	Quote   *pricing.Quote  `json:"quote"`
}

type ApproveResult struct {
	Booking *domain.Booking        `json:"booking"`
	Earning *domain.CleanerEarning `json:"earning"`
}
