package payout

import (
	"context"
	"time"

	"puretask/internal/domain"
	"puretask/internal/repository"
)

type EarningRepository interface {
	Create(ctx context.Context, e *domain.CleanerEarning) error
	GetByID(ctx context.Context, id string) (*domain.CleanerEarning, error)
	ListEarnings(ctx context.Context, cleanerID string, status domain.EarningStatus) ([]domain.CleanerEarning, error)
	ListCleanersWithPending(ctx context.Context, before time.Time) ([]string, error)
	UpdateEarningStatus(ctx context.Context, id string, to domain.EarningStatus, from ...domain.EarningStatus) (bool, error)
}

type PayoutRepository interface {
	ClaimPendingEarnings(ctx context.Context, f repository.ClaimFilter, build repository.PayoutBuilder) (*domain.Payout, []domain.CleanerEarning, error)
	GetByID(ctx context.Context, id string) (*domain.Payout, error)
	List(ctx context.Context, f repository.PayoutFilter) ([]domain.Payout, error)
	Complete(ctx context.Context, id string, at time.Time) (*domain.Payout, error)
	Fail(ctx context.Context, id, reason string) (*domain.Payout, error)
}
