package pricing

import (
	"context"

	"puretask/internal/domain"
)

type RateCardRepository interface {
	FindRateCard(ctx context.Context, cleanerID string) (*domain.RateCard, error)
}

type RuleRepository interface {
	ListActive(ctx context.Context) ([]domain.PricingRule, error)
	List(ctx context.Context) ([]domain.PricingRule, error)
	GetByID(ctx context.Context, id string) (*domain.PricingRule, error)
	Create(ctx context.Context, rule *domain.PricingRule) error
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id string) error
}

// BookingHistory answers the first-booking question.
type BookingHistory interface {
	CountClientBookings(ctx context.Context, email string) (int64, error)
}
