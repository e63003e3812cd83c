package booking

import (
	"context"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
	"puretask/internal/modules/pricing"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
}

type Quoter interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.Quote, error)
}

type EarningRecorder interface {
	RecordEarning(ctx context.Context, cleanerID, bookingID string, amount decimal.Decimal) (*domain.CleanerEarning, error)
}

type CleanerStats interface {
	IncrementJobs(ctx context.Context, cleanerID string) error
}
